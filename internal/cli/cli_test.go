package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/ghostleg/pkg/config"
	"github.com/matzehuels/ghostleg/pkg/errors"
	"github.com/matzehuels/ghostleg/pkg/observability"
	"github.com/matzehuels/ghostleg/pkg/render"
	"github.com/matzehuels/ghostleg/pkg/round"
	"github.com/matzehuels/ghostleg/pkg/store"
)

func threeLaneRound(t *testing.T) *round.Round {
	t.Helper()
	r, err := round.New(context.Background(), round.Options{
		Names:   []string{"ann", "bob", "cid"},
		Results: []string{"tea", "pie", "jam"},
		Seed:    7,
	})
	if err != nil {
		t.Fatalf("round.New() error: %v", err)
	}
	return r
}

// testConfig writes a config file that stores rounds under a temp dir.
func testConfig(t *testing.T) (path, dir string) {
	t.Helper()
	tmp := t.TempDir()
	dir = filepath.Join(tmp, "rounds")
	path = filepath.Join(tmp, "config.toml")
	body := fmt.Sprintf("rows = 6\n\n[store]\nbackend = \"file\"\ndir = %q\n", dir)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path, dir
}

// execute runs the root command with args and returns what it wrote to
// its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	observability.Reset()
	t.Cleanup(observability.Reset)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	for _, name := range []string{"play", "draw", "export", "history", "serve", "config", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRoundFlagsOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 99

	f := roundFlags{names: []string{"a", "b"}}
	opts := f.options(cfg)
	if opts.Rows != cfg.Rows || opts.MaxRungs != cfg.MaxRungs || opts.MaxLanes != cfg.MaxLanes || opts.Seed != 99 {
		t.Errorf("config values not used: %+v", opts)
	}

	f = roundFlags{names: []string{"a", "b"}, rows: 3, maxRungs: 4, seed: 5}
	opts = f.options(cfg)
	if opts.Rows != 3 || opts.MaxRungs != 4 || opts.Seed != 5 {
		t.Errorf("flags should override config: %+v", opts)
	}
}

func TestDrawCommand(t *testing.T) {
	cfgPath, dir := testConfig(t)

	out, err := execute(t, "--config", cfgPath, "draw", "-n", "ann,bob,cid", "-r", "tea,pie,jam", "--seed", "7", "--lane", "2")
	if err != nil {
		t.Fatalf("draw error: %v", err)
	}
	for _, want := range []string{"ann", "bob", "cid", "tea", "pie", "jam", "Result"} {
		if !strings.Contains(out, want) {
			t.Errorf("draw output missing %q:\n%s", want, out)
		}
	}

	s, err := store.NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	rounds, err := s.List(context.Background(), 0)
	if err != nil || len(rounds) != 1 {
		t.Fatalf("stored rounds = %v, %v, want one", rounds, err)
	}
	if rounds[0].Seed != 7 {
		t.Errorf("stored seed = %d, want 7", rounds[0].Seed)
	}
}

func TestDrawNoSave(t *testing.T) {
	cfgPath, dir := testConfig(t)

	if _, err := execute(t, "--config", cfgPath, "draw", "-n", "ann,bob", "--no-save"); err != nil {
		t.Fatalf("draw error: %v", err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("--no-save stored %d files", len(entries))
	}
}

func TestDrawErrors(t *testing.T) {
	cfgPath, _ := testConfig(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"one player", []string{"draw", "-n", "ann", "--no-save"}, errors.ErrCodeInvalidLaneCount},
		{"result count", []string{"draw", "-n", "ann,bob", "-r", "x", "--no-save"}, errors.ErrCodeInvalidLabels},
		{"lane too large", []string{"draw", "-n", "ann,bob", "--lane", "3", "--no-save"}, errors.ErrCodeInvalidInput},
		{"canvas too narrow", []string{"draw", "-n", "ann,bob,cid", "--width", "4", "--no-save"}, errors.ErrCodeInvalidLayout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"--config", cfgPath}, tt.args...)...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestHistoryCommands(t *testing.T) {
	cfgPath, dir := testConfig(t)
	s, err := store.NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	r := threeLaneRound(t)
	if err := s.Put(context.Background(), r); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--config", cfgPath, "history", "list")
	if err != nil {
		t.Fatalf("history list error: %v", err)
	}
	if !strings.Contains(out, shortID(r.ID)) || !strings.Contains(out, "ann, bob, cid") {
		t.Errorf("history list output:\n%s", out)
	}

	out, err = execute(t, "--config", cfgPath, "history", "show", r.ID)
	if err != nil {
		t.Fatalf("history show error: %v", err)
	}
	if !strings.Contains(out, "jam") {
		t.Errorf("history show output:\n%s", out)
	}

	if _, err := execute(t, "--config", cfgPath, "history", "delete", r.ID); err != nil {
		t.Fatalf("history delete error: %v", err)
	}
	if _, err := s.Get(context.Background(), r.ID); !errors.Is(err, errors.ErrCodeRoundNotFound) {
		t.Errorf("round still stored after delete: %v", err)
	}
	if _, err := execute(t, "--config", cfgPath, "history", "delete", r.ID); !errors.Is(err, errors.ErrCodeRoundNotFound) {
		t.Errorf("second delete error = %v, want ROUND_NOT_FOUND", err)
	}
}

func TestExportCommand(t *testing.T) {
	cfgPath, _ := testConfig(t)
	tmp := t.TempDir()

	r := threeLaneRound(t)
	input := filepath.Join(tmp, "round.json")
	if err := render.ExportJSON(r, input); err != nil {
		t.Fatal(err)
	}

	base := filepath.Join(tmp, "out")
	if _, err := execute(t, "--config", cfgPath, "export", input, "-f", "dot,json", "-o", base+".svg", "--lane", "1"); err != nil {
		t.Fatalf("export error: %v", err)
	}

	dot, err := os.ReadFile(base + ".dot")
	if err != nil {
		t.Fatalf("dot not written: %v", err)
	}
	if !strings.HasPrefix(string(dot), "graph G {") {
		t.Errorf("unexpected DOT output: %.40s", dot)
	}
	back, err := render.ReadJSONFile(base + ".json")
	if err != nil {
		t.Fatalf("json not readable: %v", err)
	}
	if back.ID != r.ID {
		t.Errorf("exported round ID = %s, want %s", back.ID, r.ID)
	}
}

func TestExportFlags(t *testing.T) {
	tests := []struct {
		name    string
		formats string
		want    []string
		wantErr bool
	}{
		{"empty defaults to svg", "", []string{"svg"}, false},
		{"list", "svg, PNG,dot", []string{"svg", "png", "dot"}, false},
		{"duplicates", "json,json", []string{"json"}, false},
		{"unknown", "svg,pdf", []string{"svg", "pdf"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.formats)
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.formats, got, tt.want)
			}
			if err := validateFormats(got); (err != nil) != tt.wantErr {
				t.Errorf("validateFormats(%v) error = %v, wantErr %v", got, err, tt.wantErr)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	id := "0d4f0a5e-8c55-4f0e-9c8e-2b1b4e1b7d00"
	tests := []struct {
		output, want string
	}{
		{"", "ghostleg-0d4f0a5e"},
		{"ladder", "ladder"},
		{"ladder.svg", "ladder"},
		{"out/ladder.png", "out/ladder"},
		{"ladder.v2", "ladder.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, id); got != tt.want {
			t.Errorf("basePath(%q) = %q, want %q", tt.output, got, tt.want)
		}
	}
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, err := execute(t, "--config", path, "config", "path")
	if err != nil || strings.TrimSpace(out) != path {
		t.Errorf("config path = %q, %v", out, err)
	}

	if _, err := execute(t, "--config", path, "config", "init"); err != nil {
		t.Fatalf("config init error: %v", err)
	}
	if _, err := config.Load(path); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
	if _, err := execute(t, "--config", path, "config", "init"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("second init error = %v, want INVALID_INPUT", err)
	}
	if _, err := execute(t, "--config", path, "config", "init", "--force"); err != nil {
		t.Errorf("init --force error: %v", err)
	}

	out, err = execute(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show error: %v", err)
	}
	if !strings.Contains(out, "rows = 10") || !strings.Contains(out, `backend = "file"`) {
		t.Errorf("config show output:\n%s", out)
	}
}

func TestBrokenConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("rows = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "--config", path, "draw", "-n", "a,b", "--no-save"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(out, "ghostleg") {
		t.Error("bash completion should mention the command name")
	}
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		age  string
		want string
	}{
		{"30s", "just now"},
		{"5m", "5m ago"},
		{"3h", "3h ago"},
		{"72h", "3d ago"},
	}
	for _, tt := range tests {
		d, _ := time.ParseDuration(tt.age)
		if got := formatAge(d); got != tt.want {
			t.Errorf("formatAge(%s) = %q, want %q", tt.age, got, tt.want)
		}
	}
}
