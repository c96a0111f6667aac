package sink

import (
	"encoding/json"
	"encoding/xml"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/vijaymanbajracharya/stratcol/pkg/chrono"
	"github.com/vijaymanbajracharya/stratcol/pkg/layout"
	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
)

func testModel(t *testing.T, opts ...layout.Option) layout.Model {
	t.Helper()
	upper := strat.NewLayer("Upper <sand>", 10, strat.Sandstone, 0, 10)
	upper.Environment = strat.EnvFluvial
	upper.FormationTop = strat.Float(0)
	lower := strat.NewLayer("Lower", 20, strat.Granite, 60, 70)
	lower.FormationTop = strat.Float(10)

	m, err := layout.Compute([]strat.Layer{upper, lower}, chrono.NewMapper(chrono.Default()), 400, opts...)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	return m
}

func TestRenderSVGWellFormed(t *testing.T) {
	m := testModel(t, layout.WithMode(layout.ModeChronology))
	svg := RenderSVG(m, WithTitle("Test & Column"))

	dec := xml.NewDecoder(strings.NewReader(string(svg)))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("invalid XML: %v", err)
		}
	}

	s := string(svg)
	for _, want := range []string{
		"Test &amp; Column",
		`data-pattern="607"`,
		`data-pattern="718"`,
		`class="unconformity"`,
		"Paleogene",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(s, "<sand>") {
		t.Error("layer name was not escaped")
	}
}

func TestRenderSVGDepthScale(t *testing.T) {
	m := testModel(t, layout.WithMode(layout.ModeFormationTop))
	s := string(RenderSVG(m))
	if !strings.Contains(s, "30.0m") {
		t.Error("depth scale missing bottom marker")
	}
	if strings.Contains(string(RenderSVG(m, WithoutDepthScale())), "30.0m") {
		t.Error("depth scale drawn despite WithoutDepthScale")
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	m, err := layout.Compute(nil, nil, 100)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(RenderSVG(m)), "No layers") {
		t.Error("empty model should render placeholder text")
	}
}

func TestRenderJSON(t *testing.T) {
	m := testModel(t)
	data, err := RenderJSON(m, WithJSONTitle("col"), WithJSONIndent())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out struct {
		Title  string `json:"title"`
		Mode   string `json:"mode"`
		Blocks []struct {
			Index    int     `json:"index"`
			Height   float64 `json:"height"`
			Category string  `json:"category"`
			Pattern  string  `json:"pattern"`
			Bands    []struct {
				Level string `json:"level"`
				Name  string `json:"name"`
				Color string `json:"color"`
			} `json:"bands"`
		} `json:"blocks"`
		Columns []string `json:"columns"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if out.Title != "col" || out.Mode != "thickness" {
		t.Errorf("title/mode = %q/%q", out.Title, out.Mode)
	}
	if len(out.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(out.Blocks))
	}
	if b := out.Blocks[1]; b.Category != "igneous" || b.Pattern != "718" {
		t.Errorf("block 1 = %+v", b)
	}
	if sum := out.Blocks[0].Height + out.Blocks[1].Height; math.Abs(sum-400) > 1e-6 {
		t.Errorf("heights = %v + %v, want 400", out.Blocks[0].Height, out.Blocks[1].Height)
	}
	if len(out.Blocks[0].Bands) == 0 || out.Blocks[0].Bands[0].Level != "era" || !strings.HasPrefix(out.Blocks[0].Bands[0].Color, "#") {
		t.Errorf("bands = %+v", out.Blocks[0].Bands)
	}
	if out.Columns[len(out.Columns)-1] != "lithology" {
		t.Errorf("columns = %v", out.Columns)
	}
}

func TestWavePath(t *testing.T) {
	p := wavePath(0, 24, 10, 3, 12)
	if !strings.HasPrefix(p, "M0.00,10.00") {
		t.Errorf("path start = %q", p)
	}
	if n := strings.Count(p, "Q"); n != 4 {
		t.Errorf("segments = %d, want 4", n)
	}
	if !strings.HasSuffix(p, "24.00,10.00") {
		t.Errorf("path end = %q", p)
	}
	if flat := wavePath(0, 10, 5, 3, 0); flat != "M0.00,5.00 L10.00,5.00" {
		t.Errorf("flat path = %q", flat)
	}
}

func TestTruncateLabel(t *testing.T) {
	if got := truncateLabel("short", 200, 10); got != "short" {
		t.Errorf("truncateLabel = %q", got)
	}
	if got := truncateLabel("a very long formation name", 40, 10); !strings.HasSuffix(got, "..") || len(got) >= 26 {
		t.Errorf("truncateLabel = %q", got)
	}
}
