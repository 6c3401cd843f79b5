package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/archaeo-tools/archaeo/internal/mcp"
	"github.com/spf13/cobra"
)

const toolPrefix = "archaeo_"

func newServeCmd(a *app) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server for AI agent integration",
		Long: `Start an MCP (Model Context Protocol) server on stdio.

Agents call the tools below instead of running archaeo source and reading its
output files. Directory scans apply the exclude patterns of the configuration.

Available Tools:
  archaeo_metrics   Rows or space tree of one file
  archaeo_files     C and C++ files under a directory
  archaeo_hotspots  Spaces ranked by one metric`,
		Example: `  archaeo serve --mcp
  archaeo serve --mcp --tools metrics,hotspots
  archaeo serve --mcp --timeout 30m
  archaeo serve --list-tools`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd)
		},
	}

	f := serveCmd.Flags()
	f.Bool("mcp", false, "Start MCP server (stdio transport)")
	f.String("tools", "", "Comma-separated list of tools to expose (default: all)")
	f.String("timeout", "30m", "Inactivity timeout (0 for no timeout)")
	f.Bool("list-tools", false, "List available tools")

	return serveCmd
}

func (a *app) runServe(cmd *cobra.Command) error {
	f := cmd.Flags()
	out := cmd.OutOrStdout()

	if list, _ := f.GetBool("list-tools"); list {
		fmt.Fprintln(out, "Available MCP tools:")
		fmt.Fprintln(out)
		for _, name := range mcp.AllTools {
			fmt.Fprintf(out, "  %-18s %s\n", name, toolSummary(name))
		}
		return nil
	}

	if start, _ := f.GetBool("mcp"); !start {
		return fmt.Errorf("use --mcp to start the MCP server, or --help for usage")
	}

	rawTimeout, _ := f.GetString("timeout")
	timeout, err := parseDuration(rawTimeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	rawTools, _ := f.GetString("tools")

	server, err := mcp.New(mcp.Config{
		Tools:   parseTools(rawTools),
		Timeout: timeout,
		Exclude: a.cfg.Source.Exclude,
		Version: Version,
		Log:     a.log,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	// stdout carries the protocol
	a.log.WithField("tools", server.ListTools()).Info("serve: starting MCP server")
	if timeout > 0 {
		a.log.WithField("timeout", timeout).Info("serve: inactivity timeout set")
	}
	return server.ServeStdio()
}

func toolSummary(name string) string {
	for _, s := range mcp.Schemas() {
		if s.Name == name {
			return s.Description
		}
	}
	return ""
}

func parseDuration(s string) (time.Duration, error) {
	if s == "0" || s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// parseTools splits a comma-separated tool list, accepting shorthand names.
func parseTools(s string) []string {
	var tools []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tools = append(tools, normalizeToolName(t))
		}
	}
	return tools
}

// normalizeToolName converts shorthand names to full tool names.
// "files" -> "archaeo_files", "archaeo_files" -> "archaeo_files"
func normalizeToolName(name string) string {
	if !strings.HasPrefix(name, toolPrefix) {
		return toolPrefix + name
	}
	return name
}
