// Package mcp provides an MCP (Model Context Protocol) server for archaeo.
// It lets AI agents compute source metrics through MCP tools instead of
// running the source command and reading its output files.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/archaeo-tools/archaeo/internal/analyze"
	"github.com/archaeo-tools/archaeo/internal/discover"
	"github.com/archaeo-tools/archaeo/internal/exclude"
	"github.com/archaeo-tools/archaeo/internal/logging"
	"github.com/archaeo-tools/archaeo/internal/numeric"
	"github.com/archaeo-tools/archaeo/internal/output"
	"github.com/archaeo-tools/archaeo/internal/parser"
	"github.com/archaeo-tools/archaeo/internal/row"
	"github.com/archaeo-tools/archaeo/internal/space"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

// Server wraps the MCP server with archaeo-specific functionality
type Server struct {
	mcpServer    *server.MCPServer
	engine       *analyze.Engine
	exclude      []string
	log          logrus.FieldLogger
	tools        map[string]bool
	lastActivity time.Time
	timeout      time.Duration
	mu           sync.RWMutex
}

// Config holds server configuration
type Config struct {
	Tools   []string      // Which tools to expose (empty = all)
	Timeout time.Duration // Inactivity timeout (0 = no timeout)
	Exclude []string      // Patterns skipped when a tool scans a directory
	Version string
	Log     logrus.FieldLogger
}

// AllTools lists all available tools
var AllTools = []string{"archaeo_metrics", "archaeo_files", "archaeo_hotspots"}

const (
	defaultHotspotMetric = "cyclomatic"
	defaultHotspotLimit  = 10
)

// New creates a new MCP server for archaeo
func New(cfg Config) (*Server, error) {
	log := cfg.Log
	if log == nil {
		log = logging.Discard()
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	mcpServer := server.NewMCPServer(
		"archaeo",
		version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcpServer:    mcpServer,
		engine:       analyze.New(log),
		exclude:      cfg.Exclude,
		log:          log,
		tools:        make(map[string]bool),
		lastActivity: time.Now(),
		timeout:      cfg.Timeout,
	}

	toolsToRegister := cfg.Tools
	if len(toolsToRegister) == 0 {
		toolsToRegister = AllTools
	}
	for _, toolName := range toolsToRegister {
		if err := s.registerTool(toolName); err != nil {
			return nil, fmt.Errorf("failed to register tool %s: %w", toolName, err)
		}
		s.tools[toolName] = true
	}

	return s, nil
}

// registerTool registers a single tool with the MCP server
func (s *Server) registerTool(name string) error {
	switch name {
	case "archaeo_metrics":
		return s.registerMetricsTool()
	case "archaeo_files":
		return s.registerFilesTool()
	case "archaeo_hotspots":
		return s.registerHotspotsTool()
	default:
		return fmt.Errorf("unknown tool: %s", name)
	}
}

// ServeStdio starts the server using stdio transport
func (s *Server) ServeStdio() error {
	if s.timeout > 0 {
		go s.timeoutChecker()
	}
	return server.ServeStdio(s.mcpServer)
}

// timeoutChecker monitors for inactivity and exits if timeout exceeded
func (s *Server) timeoutChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if s.idle() > s.timeout {
			s.log.WithField("timeout", s.timeout).Info("serve: exiting after inactivity")
			os.Exit(0)
		}
	}
}

func (s *Server) idle() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.lastActivity)
}

// updateActivity updates the last activity timestamp
func (s *Server) updateActivity() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// ListTools returns the registered tools, sorted.
func (s *Server) ListTools() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]string, 0, len(s.tools))
	for t := range s.tools {
		tools = append(tools, t)
	}
	sort.Strings(tools)
	return tools
}

// ToolSchema describes a tool's name, description, and parameters.
type ToolSchema struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	Parameters  []ParameterSchema `json:"parameters" yaml:"parameters"`
}

// ParameterSchema describes a single tool parameter.
type ParameterSchema struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
	Required    bool   `json:"required" yaml:"required"`
}

// toolSchemaRegistry holds the schema definitions for all tools.
// These mirror the mcp.NewTool() definitions in the register*Tool() functions.
var toolSchemaRegistry = map[string]ToolSchema{
	"archaeo_metrics": {
		Name:        "archaeo_metrics",
		Description: "Compute the metrics of one C or C++ file. Returns one row per function, closure, class, struct, union and namespace.",
		Parameters: []ParameterSchema{
			{Name: "path", Type: "string", Description: "Source file to analyze", Required: true},
			{Name: "extended", Type: "boolean", Description: "Use the extended schema with subtree aggregates"},
			{Name: "with_unit", Type: "boolean", Description: "Include a first row for the translation unit"},
			{Name: "tree", Type: "boolean", Description: "Return the hierarchical space tree instead of rows"},
		},
	},
	"archaeo_files": {
		Name:        "archaeo_files",
		Description: "List the C and C++ source files under a directory, after exclude patterns.",
		Parameters: []ParameterSchema{
			{Name: "path", Type: "string", Description: "Directory to scan", Required: true},
		},
	},
	"archaeo_hotspots": {
		Name:        "archaeo_hotspots",
		Description: "Rank the functions and other spaces of a file or directory by one metric, highest first.",
		Parameters: []ParameterSchema{
			{Name: "path", Type: "string", Description: "File or directory to analyze", Required: true},
			{Name: "metric", Type: "string", Description: "Column to rank by (default: cyclomatic)"},
			{Name: "extended", Type: "boolean", Description: "Rank by an extended schema column"},
			{Name: "limit", Type: "number", Description: "Maximum results (default: 10)"},
		},
	},
}

// Schemas returns the schemas of all available tools, in AllTools order.
func Schemas() []ToolSchema {
	schemas := make([]ToolSchema, 0, len(AllTools))
	for _, name := range AllTools {
		schemas = append(schemas, toolSchemaRegistry[name])
	}
	return schemas
}

// GetToolSchemas returns schemas for all registered tools, sorted by name.
func (s *Server) GetToolSchemas() []ToolSchema {
	names := s.ListTools()
	schemas := make([]ToolSchema, 0, len(names))
	for _, name := range names {
		if schema, ok := toolSchemaRegistry[name]; ok {
			schemas = append(schemas, schema)
		}
	}
	return schemas
}

// CallTool dispatches a tool call by name with the given arguments.
// Returns the JSON result string or an error.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	s.mu.RLock()
	registered := s.tools[name]
	s.mu.RUnlock()

	if !registered {
		return "", fmt.Errorf("unknown tool: %s", name)
	}

	switch name {
	case "archaeo_metrics":
		path, _ := args["path"].(string)
		if path == "" {
			return "", fmt.Errorf("path parameter is required")
		}
		extended, _ := args["extended"].(bool)
		withUnit, _ := args["with_unit"].(bool)
		tree, _ := args["tree"].(bool)
		return s.executeMetrics(ctx, path, extended, withUnit, tree)

	case "archaeo_files":
		path, _ := args["path"].(string)
		if path == "" {
			return "", fmt.Errorf("path parameter is required")
		}
		return s.executeFiles(path)

	case "archaeo_hotspots":
		path, _ := args["path"].(string)
		if path == "" {
			return "", fmt.Errorf("path parameter is required")
		}
		metric, _ := args["metric"].(string)
		extended, _ := args["extended"].(bool)
		limit := defaultHotspotLimit
		if l, ok := args["limit"].(float64); ok {
			limit = int(l)
		}
		return s.executeHotspots(ctx, path, metric, extended, limit)

	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

// registerMetricsTool registers the archaeo_metrics tool
func (s *Server) registerMetricsTool() error {
	tool := mcp.NewTool("archaeo_metrics",
		mcp.WithDescription(toolSchemaRegistry["archaeo_metrics"].Description),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Source file to analyze"),
		),
		mcp.WithBoolean("extended",
			mcp.Description("Use the extended schema with subtree aggregates"),
		),
		mcp.WithBoolean("with_unit",
			mcp.Description("Include a first row for the translation unit"),
		),
		mcp.WithBoolean("tree",
			mcp.Description("Return the hierarchical space tree instead of rows"),
		),
	)

	s.mcpServer.AddTool(tool, s.handle("archaeo_metrics"))
	return nil
}

// registerFilesTool registers the archaeo_files tool
func (s *Server) registerFilesTool() error {
	tool := mcp.NewTool("archaeo_files",
		mcp.WithDescription(toolSchemaRegistry["archaeo_files"].Description),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Directory to scan"),
		),
	)

	s.mcpServer.AddTool(tool, s.handle("archaeo_files"))
	return nil
}

// registerHotspotsTool registers the archaeo_hotspots tool
func (s *Server) registerHotspotsTool() error {
	tool := mcp.NewTool("archaeo_hotspots",
		mcp.WithDescription(toolSchemaRegistry["archaeo_hotspots"].Description),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File or directory to analyze"),
		),
		mcp.WithString("metric",
			mcp.Description("Column to rank by (default: cyclomatic)"),
		),
		mcp.WithBoolean("extended",
			mcp.Description("Rank by an extended schema column"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results (default: 10)"),
		),
	)

	s.mcpServer.AddTool(tool, s.handle("archaeo_hotspots"))
	return nil
}

// handle adapts CallTool to an MCP tool handler. Tool failures are reported
// as error results rather than protocol errors.
func (s *Server) handle(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.updateActivity()

		result, err := s.CallTool(ctx, name, req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(result), nil
	}
}

func (s *Server) executeMetrics(ctx context.Context, path string, extended, withUnit, tree bool) (string, error) {
	root, err := s.analyzeFile(ctx, path)
	if err != nil {
		return "", err
	}

	formatter := output.NewJSONFormatter()
	var buf bytes.Buffer
	if tree {
		if err := formatter.WriteTree(&buf, root); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	set := row.FlattenTree(root, path, row.VariantFor(extended), withUnit)
	if err := formatter.WriteRows(&buf, &set); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *Server) executeFiles(path string) (string, error) {
	files, err := discover.Files(path, discover.Options{
		Exclude: exclude.New(s.exclude),
		Log:     s.log,
	})
	if err != nil {
		return "", err
	}

	result := map[string]interface{}{
		"root":  path,
		"count": len(files),
		"files": files,
	}
	if files == nil {
		result["files"] = []string{}
	}
	return toJSON(result)
}

// hotspot is one ranked row.
type hotspot struct {
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	SourceFile string  `json:"source_file"`
	StartLine  int     `json:"start_line"`
	EndLine    int     `json:"end_line"`
	Value      float64 `json:"value"`
}

func (s *Server) executeHotspots(ctx context.Context, path, metric string, extended bool, limit int) (string, error) {
	if metric == "" {
		metric = defaultHotspotMetric
	}
	if limit <= 0 {
		limit = defaultHotspotLimit
	}

	variant := row.VariantFor(extended)
	column, err := metricColumn(variant, metric)
	if err != nil {
		return "", err
	}

	files, err := s.inputs(path)
	if err != nil {
		return "", err
	}

	var spots []hotspot
	for _, file := range files {
		root, err := s.analyzeFile(ctx, file)
		if err != nil {
			return "", err
		}
		set := row.FlattenTree(root, file, variant, false)
		for i := 0; i < set.Len(); i++ {
			id, values := set.Values(i)
			spots = append(spots, hotspot{
				Name:       optional(id.Name, row.NoNameFound),
				Kind:       id.Kind,
				SourceFile: file,
				StartLine:  id.StartLine,
				EndLine:    id.EndLine,
				Value:      numeric.Finite(values[column]),
			})
		}
	}

	sort.SliceStable(spots, func(i, j int) bool {
		return spots[i].Value > spots[j].Value
	})
	if len(spots) > limit {
		spots = spots[:limit]
	}

	return toJSON(map[string]interface{}{
		"metric":   metric,
		"files":    len(files),
		"hotspots": spots,
	})
}

// inputs resolves a file or directory argument into source files.
func (s *Server) inputs(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return discover.Files(path, discover.Options{
		Exclude: exclude.New(s.exclude),
		Log:     s.log,
	})
}

func (s *Server) analyzeFile(ctx context.Context, path string) (*space.Space, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lang, err := parser.GuessLanguage(source, path)
	if err != nil {
		return nil, err
	}
	root, err := s.engine.Analyze(ctx, lang, source, path)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("%s: no metrics extracted", path)
	}
	return root, nil
}

// metricColumn returns the index of metric among the variant's metric
// values.
func metricColumn(v row.Variant, metric string) (int, error) {
	set := row.Set{Variant: v}
	for i, col := range set.Header()[row.IdentityColumns():] {
		if col == metric {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s metric: %s", v, metric)
}

// Helper functions

func toJSON(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func optional(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
