package cmd

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/archaeo-tools/archaeo/internal/config"
	"github.com/archaeo-tools/archaeo/internal/output"
	"github.com/archaeo-tools/archaeo/internal/row"
	"github.com/archaeo-tools/archaeo/internal/store"
)

const sample = `int add(int a, int b)
{
	return a + b;
}

int sign(int v)
{
	if (v < 0) {
		return -1;
	}
	return v > 0;
}
`

// execute runs a fresh command tree and returns what it printed.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("ARCHAEO_LOG", "")

	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeSample(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func readRecords(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	return records
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(stdout, Version) {
		t.Errorf("expected version %s in %q", Version, stdout)
	}
}

func TestForAgents(t *testing.T) {
	stdout, _, err := execute(t, "--for-agents")
	if err != nil {
		t.Fatalf("--for-agents failed: %v", err)
	}

	var info struct {
		Version  string        `json:"version"`
		Commands []CommandInfo `json:"commands"`
	}
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}

	var source *CommandInfo
	for i := range info.Commands {
		if info.Commands[i].Name == "source" {
			source = &info.Commands[i]
		}
	}
	if source == nil {
		t.Fatal("source command not listed")
	}
	flags := make(map[string]bool)
	for _, f := range source.Flags {
		flags[f.Name] = true
	}
	for _, name := range []string{"path", "output-path", "fmt", "no-flatten", "extended"} {
		if !flags[name] {
			t.Errorf("flag %s not listed", name)
		}
	}
}

func TestSourceCSV(t *testing.T) {
	src := writeSample(t, t.TempDir(), "math.c")
	out := t.TempDir()

	if _, _, err := execute(t, "source", "-p", src, "-o", out); err != nil {
		t.Fatalf("source failed: %v", err)
	}

	records := readRecords(t, filepath.Join(out, "math.csv"))
	if len(records) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(records))
	}
	if records[1][0] != "add" || records[2][0] != "sign" {
		t.Errorf("unexpected rows: %v / %v", records[1][:6], records[2][:6])
	}
}

func TestSourceExtendedJSON(t *testing.T) {
	src := writeSample(t, t.TempDir(), "math.c")
	out := t.TempDir()

	if _, _, err := execute(t, "source", "-p", src, "-o", out, "--fmt", "json", "--extended"); err != nil {
		t.Fatalf("source failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, "math-extended.json"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if len(rows[0]) != len(row.ExtendedColumns) {
		t.Errorf("expected %d keys, got %d", len(row.ExtendedColumns), len(rows[0]))
	}
}

func TestSourceRequiredFlags(t *testing.T) {
	out := t.TempDir()

	if _, _, err := execute(t, "source", "-o", out); !errors.Is(err, errPathRequired) {
		t.Errorf("expected errPathRequired, got %v", err)
	}
	if _, _, err := execute(t, "source", "-p", out); !errors.Is(err, errOutputPathRequired) {
		t.Errorf("expected errOutputPathRequired, got %v", err)
	}
}

func TestSourceInvalidFormat(t *testing.T) {
	src := writeSample(t, t.TempDir(), "math.c")

	_, _, err := execute(t, "source", "-p", src, "-o", t.TempDir(), "-f", "xml")
	if !errors.Is(err, output.ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestSourceEnvironmentOverride(t *testing.T) {
	src := writeSample(t, t.TempDir(), "math.c")
	out := t.TempDir()
	t.Setenv("ARCHAEO_FMT", "json")

	if _, _, err := execute(t, "source", "-p", src, "-o", out); err != nil {
		t.Fatalf("source failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "math.json")); err != nil {
		t.Errorf("expected JSON output from ARCHAEO_FMT: %v", err)
	}
}

func TestSourceConfigIncludeUnit(t *testing.T) {
	src := writeSample(t, t.TempDir(), "math.c")
	out := t.TempDir()
	cfg := writeConfig(t, "source:\n  include_unit: true\n")

	if _, _, err := execute(t, "--config", cfg, "source", "-p", src, "-o", out); err != nil {
		t.Fatalf("source failed: %v", err)
	}

	records := readRecords(t, filepath.Join(out, "math.csv"))
	if len(records) != 4 {
		t.Fatalf("expected header and 3 rows, got %d", len(records))
	}
	if records[1][4] != "unit" {
		t.Errorf("expected a unit row first, got kind %q", records[1][4])
	}
}

func TestSourceFlagOverridesConfigExclude(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "gen"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeSample(t, dir, "main.c")
	writeSample(t, filepath.Join(dir, "gen"), "parser.c")
	cfg := writeConfig(t, "source:\n  exclude:\n    - gen/\n")

	out := t.TempDir()
	if _, _, err := execute(t, "--config", cfg, "source", "-p", dir, "-o", out); err != nil {
		t.Fatalf("source failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "parser.csv")); !os.IsNotExist(err) {
		t.Error("config exclude pattern was not applied")
	}

	out = t.TempDir()
	if _, _, err := execute(t, "--config", cfg, "source", "-p", dir, "-o", out, "--exclude", "main.c"); err != nil {
		t.Fatalf("source failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "parser.csv")); err != nil {
		t.Errorf("flag should replace config excludes: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "main.csv")); !os.IsNotExist(err) {
		t.Error("flag exclude pattern was not applied")
	}
}

func TestSourceDatabaseFromConfig(t *testing.T) {
	src := writeSample(t, t.TempDir(), "math.c")
	dbPath := filepath.Join(t.TempDir(), "metrics.db")
	cfg := writeConfig(t, "source:\n  database: "+dbPath+"\n")

	if _, _, err := execute(t, "--config", cfg, "source", "-p", src, "-o", t.TempDir()); err != nil {
		t.Fatalf("source failed: %v", err)
	}

	db, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer db.Close()
	stats, err := db.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Files != 1 || stats.RegularRows != 2 {
		t.Errorf("unexpected database contents: %+v", stats)
	}
}

func TestSourceVerboseLogs(t *testing.T) {
	src := writeSample(t, t.TempDir(), "math.c")

	_, stderr, err := execute(t, "-v", "source", "-p", src, "-o", t.TempDir())
	if err != nil {
		t.Fatalf("source failed: %v", err)
	}
	if !strings.Contains(stderr, "level=debug") {
		t.Errorf("expected debug entries with -v, got %q", stderr)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	if _, _, err := execute(t, "--log-level", "loud", "version"); err == nil {
		t.Error("expected error for invalid log level")
	}
}

func TestMissingConfigFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")
	if _, _, err := execute(t, "--config", missing, "version"); err == nil {
		t.Error("expected error for a missing --config file")
	}
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	stdout, _, err := execute(t, "init")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(stdout, "Initialized") {
		t.Errorf("unexpected output %q", stdout)
	}
	if _, err := config.LoadFromPath(filepath.Join(dir, config.ConfigFileName)); err != nil {
		t.Fatalf("written config does not load: %v", err)
	}

	stdout, _, err = execute(t, "init")
	if err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	if !strings.Contains(stdout, "Already initialized") {
		t.Errorf("expected already initialized, got %q", stdout)
	}

	stdout, _, err = execute(t, "init", "--force")
	if err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
	if !strings.Contains(stdout, "Initialized") {
		t.Errorf("unexpected output %q", stdout)
	}
}
