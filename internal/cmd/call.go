package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/archaeo-tools/archaeo/internal/mcp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newCallCmd(a *app) *cobra.Command {
	callCmd := &cobra.Command{
		Use:   "call [tool] [json-args]",
		Short: "Call an MCP tool from the command line",
		Long: `Call any archaeo MCP tool with structured JSON input and output.

Modes:
  archaeo call --list                       List all tools and parameters
  archaeo call <tool> '{"key":"value"}'     Call a tool with JSON args
  archaeo call --pipe                       Read JSON lines from stdin

Tool names accept shorthand: "files" is equivalent to "archaeo_files".`,
		Example: `  archaeo call --list
  archaeo call metrics '{"path":"src/main.c"}'
  archaeo call hotspots '{"path":"src","metric":"cognitive","limit":5}'
  echo '{"tool":"archaeo_files","args":{"path":"src"}}' | archaeo call --pipe`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCall(cmd, args)
		},
	}

	f := callCmd.Flags()
	f.Bool("list", false, "List all available tools and their parameters")
	f.Bool("pipe", false, "Read JSON lines from stdin (pipe mode)")
	f.String("list-format", "yaml", "Format of --list (yaml|json|jsonl)")

	return callCmd
}

func (a *app) runCall(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	if list, _ := f.GetBool("list"); list {
		format, _ := f.GetString("list-format")
		return writeSchemas(cmd.OutOrStdout(), format)
	}

	srv, err := mcp.New(mcp.Config{
		Exclude: a.cfg.Source.Exclude,
		Version: Version,
		Log:     a.log,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	if pipe, _ := f.GetBool("pipe"); pipe {
		return a.runCallPipe(cmd, srv)
	}
	if len(args) == 0 {
		return fmt.Errorf("tool name required (run 'archaeo call --list' to see available tools)")
	}

	toolArgs := make(map[string]interface{})
	if len(args) >= 2 {
		if err := json.Unmarshal([]byte(args[1]), &toolArgs); err != nil {
			return fmt.Errorf("invalid JSON args: %w", err)
		}
	}

	result, err := srv.CallTool(commandContext(cmd), normalizeToolName(args[0]), toolArgs)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result)
	return nil
}

func writeSchemas(w io.Writer, format string) error {
	schemas := mcp.Schemas()

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(schemas)
	case "jsonl":
		enc := json.NewEncoder(w)
		for _, s := range schemas {
			if err := enc.Encode(s); err != nil {
				return err
			}
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(schemas)
	default:
		return fmt.Errorf("unsupported list format: %s", format)
	}
}

// pipeRequest is the JSON format for pipe mode input.
type pipeRequest struct {
	Tool string                 `json:"tool"`
	Args map[string]interface{} `json:"args"`
}

// pipeResponse is the JSON format for pipe mode output.
type pipeResponse struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func (a *app) runCallPipe(cmd *cobra.Command, srv *mcp.Server) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var resp pipeResponse
		var req pipeRequest
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			resp.Error = fmt.Sprintf("invalid JSON: %v", err)
		} else {
			if req.Args == nil {
				req.Args = make(map[string]interface{})
			}
			result, err := srv.CallTool(commandContext(cmd), normalizeToolName(req.Tool), req.Args)
			if err != nil {
				resp.Error = err.Error()
			} else {
				resp.Result = json.RawMessage(result)
			}
		}
		if err := enc.Encode(resp); err != nil {
			return err
		}
	}

	return scanner.Err()
}
