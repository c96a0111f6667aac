package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vijaymanbajracharya/stratcol/pkg/cache"
	"github.com/vijaymanbajracharya/stratcol/pkg/chrono"
	"github.com/vijaymanbajracharya/stratcol/pkg/config"
	stratio "github.com/vijaymanbajracharya/stratcol/pkg/io"
	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
)

// captureOutput redirects status output for the duration of the test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := out
	out = &buf
	t.Cleanup(func() { out = old })
	return &buf
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeColumn(t *testing.T, dir, name string, layers ...strat.Layer) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := stratio.Export(path, layers, "test"); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	return path
}

func sampleLayers() []strat.Layer {
	a := strat.NewLayer("Mancos", 30, strat.ShaleMudstone, 80, 95)
	a.FormationTop = strat.Float(0)
	b := strat.NewLayer("Morrison", 60, strat.Siltstone, 145, 155)
	b.FormationTop = strat.Float(30)
	return []strat.Layer{a, b}
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, log.WarnLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestNewCacheBackends(t *testing.T) {
	c := New(io.Discard, log.WarnLevel)

	c.Config.Cache.Backend = config.CacheNone
	cc, _, err := c.newCache(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cc.(cache.NullCache); !ok {
		t.Errorf("backend none = %T, want NullCache", cc)
	}

	dir := t.TempDir()
	c.Config.Cache.Backend = config.CacheFile
	c.Config.Cache.Dir = dir
	cc, keyer, err := c.newCache(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	fc, ok := cc.(*cache.FileCache)
	if !ok || fc.Dir() != dir {
		t.Errorf("backend file = %T, want FileCache in %s", cc, dir)
	}
	if keyer != nil {
		t.Errorf("file backend keyer = %T, want nil (default)", keyer)
	}

	cc, _, err = c.newCache(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cc.(cache.NullCache); !ok {
		t.Errorf("--no-cache = %T, want NullCache", cc)
	}
}

func TestNewMapperDegrades(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, log.WarnLevel)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "eras.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	c.Config.Reference.Dir = dir

	m := c.newMapper()
	if !m.Table().IsEmpty() {
		t.Error("malformed reference data should give an empty table")
	}
	if !strings.Contains(buf.String(), "reference data unavailable") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

func TestRenderCommand(t *testing.T) {
	buf := captureOutput(t)
	dir := t.TempDir()
	a := writeColumn(t, dir, "a.json", sampleLayers()...)
	b := writeColumn(t, dir, "b.yaml", sampleLayers()[:1]...)
	cfg := writeConfig(t, "[cache]\nbackend = \"none\"\n")

	outDir := filepath.Join(dir, "out")
	if err := run(t, "render", a, b, "--config", cfg, "-f", "svg,json", "-o", outDir, "--mode", "chronology"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	for _, name := range []string{"a.svg", "a.json", "b.svg", "b.json"} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", name)
		}
	}
	if !strings.Contains(buf.String(), "1 unconformities") {
		t.Errorf("stats should report the gap: %q", buf.String())
	}
}

func TestRenderCommandRejectsBadFlags(t *testing.T) {
	captureOutput(t)
	dir := t.TempDir()
	a := writeColumn(t, dir, "a.json", sampleLayers()...)
	cfg := writeConfig(t, "[cache]\nbackend = \"none\"\n")

	for _, args := range [][]string{
		{"render", a, "--config", cfg, "-f", "gif"},
		{"render", a, "--config", cfg, "--mode", "sideways"},
		{"render", a, "--config", cfg, "--levels", "eon"},
		{"render", a, "--config", cfg, "--from", "10", "--to", "5"},
	} {
		if err := run(t, args...); err == nil {
			t.Errorf("%v: expected error", args[3:])
		}
	}
}

func TestLayoutCommand(t *testing.T) {
	captureOutput(t)
	dir := t.TempDir()
	a := writeColumn(t, dir, "well.json", sampleLayers()...)
	cfg := writeConfig(t, "[cache]\nbackend = \"file\"\ndir = \""+filepath.ToSlash(filepath.Join(dir, "cache"))+"\"\n")

	if err := run(t, "layout", a, "--config", cfg, "--mode", "formation-top"); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "well.layout.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"formation-top"`)) {
		t.Errorf("layout output missing mode: %.80s", data)
	}

	buf := captureOutput(t)
	if err := run(t, "cache", "clear", "--config", cfg); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(buf.String(), "Cache cleared") {
		t.Errorf("cache clear output = %q", buf.String())
	}
}

func TestValidateCommand(t *testing.T) {
	captureOutput(t)
	dir := t.TempDir()
	good := writeColumn(t, dir, "good.json", sampleLayers()...)

	overlapping := sampleLayers()
	overlapping[1].FormationTop = strat.Float(10)
	bad := writeColumn(t, dir, "bad.json", overlapping...)

	if err := validateFile(context.Background(), good); err != nil {
		t.Errorf("validateFile(good) = %v", err)
	}
	if err := validateFile(context.Background(), bad); err == nil || !strings.Contains(err.Error(), "Mancos") {
		t.Errorf("validateFile(bad) = %v, want overlap with Mancos", err)
	}

	cfg := writeConfig(t, "")
	if err := run(t, "validate", good, bad, "--config", cfg); err == nil {
		t.Error("validate should fail when any file is invalid")
	}
}

func TestChronoTable(t *testing.T) {
	c := New(io.Discard, log.WarnLevel)
	res, err := c.newMapper().Map(60, 70)
	if err != nil {
		t.Fatal(err)
	}
	got := chronoTable(res, parseLevelListMust(t, "era,period"))
	for _, want := range []string{"Cenozoic", "Mesozoic", "Paleogene", "Cretaceous"} {
		if !strings.Contains(got, want) {
			t.Errorf("table missing %s", want)
		}
	}
	if strings.Contains(got, "Maastrichtian") {
		t.Error("table should omit unselected levels")
	}
}

func parseLevelListMust(t *testing.T, s string) []chrono.Level {
	t.Helper()
	l, err := parseLevelList(s)
	if err != nil {
		t.Fatal(err)
	}
	return l
}
