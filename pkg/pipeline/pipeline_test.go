package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/matzehuels/donut/pkg/cache"
	"github.com/matzehuels/donut/pkg/chart"
	"github.com/matzehuels/donut/pkg/donut"
	"github.com/matzehuels/donut/pkg/errors"
	"github.com/matzehuels/donut/pkg/interact"
	"github.com/matzehuels/donut/pkg/observability"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v", tt.format, errors.GetCode(err))
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg, PNG ,json", []string{"svg", "png", "json"}},
		{"svg,,pdf", []string{"svg", "pdf"}},
	}
	for _, tt := range tests {
		got := ParseFormats(tt.in)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOptionsValidateForRender(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("zero options should be valid: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != 2 {
		t.Errorf("Scale = %v, want 2", opts.Scale)
	}

	bad := []Options{
		{Formats: []string{"gif"}},
		{Scale: -1},
		{Params: donut.Params{OuterRadius: -5}},
		{Links: true, LinkBase: "javascript:alert(1)"},
	}
	for _, o := range bad {
		if err := o.ValidateForRender(); err == nil {
			t.Errorf("ValidateForRender(%+v) should fail", o)
		}
	}
}

func sampleParams() donut.Params {
	p := donut.DefaultParams()
	p.Data = chart.NewMap(
		chart.Entry{Label: "North", Value: 120},
		chart.Entry{Label: "South", Value: 80},
	)
	return p
}

func TestRunnerExecuteCaches(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	defer r.Close()

	opts := Options{Params: sampleParams(), Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run should miss")
	}
	if first.Stats.Slices != 2 || first.Stats.Entries != 2 {
		t.Errorf("Stats = %+v, want 2 entries and 2 slices", first.Stats)
	}
	if !strings.Contains(string(first.Artifacts[FormatSVG]), `class="donut-slice"`) {
		t.Error("svg artifact missing slices")
	}
	if !strings.Contains(string(first.Artifacts[FormatJSON]), `"slices"`) {
		t.Error("json artifact missing slices")
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the cache")
	}
	if string(second.Artifacts[FormatSVG]) != string(first.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}

	opts.Refresh = false
	opts.Params.IsDonut = false
	pie, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if pie.CacheInfo.RenderHit {
		t.Error("changed geometry should miss")
	}
	if strings.Contains(string(pie.Artifacts[FormatSVG]), "donut-center") {
		t.Error("pie artifact should have no center")
	}
}

func TestRunnerExecuteLoadsDataFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	if err := os.WriteFile(path, []byte("Done: 30\nTodo: 10\nBlocked: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{DataFile: path, Params: donut.DefaultParams()})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.Entries != 3 || res.Stats.Slices != 2 {
		t.Errorf("Stats = %+v, want 3 entries and 2 slices", res.Stats)
	}
	if got := res.Chart.Slices()[0].Label; got != "Done" {
		t.Errorf("first slice = %q, want Done", got)
	}

	_, err = r.Execute(context.Background(), Options{DataFile: filepath.Join(t.TempDir(), "missing.json")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestLoadKeepsLabelRestriction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`{"data":{"A":1,"B":2},"labels":["A","B"]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path, donut.Params{Labels: []string{"B"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Labels) != 1 || p.Labels[0] != "B" {
		t.Errorf("Labels = %v, want [B]", p.Labels)
	}

	p, err = Load(path, donut.Params{})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Labels) != 2 {
		t.Errorf("Labels = %v, want the file's restriction", p.Labels)
	}
}

func TestRunnerRenderSkipsCacheWhileHovering(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	c := donut.New(sampleParams(), interact.Collaborators{})
	opts := Options{Formats: []string{FormatSVG}}

	if _, err := r.Render(ctx, c, opts); err != nil {
		t.Fatal(err)
	}

	c.State().SliceHover("North")
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, c, opts)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("hovered chart should not be served from cache")
	}
	if !strings.Contains(string(artifacts[FormatSVG]), "donut-tooltip") {
		t.Error("hovered render should include the tooltip")
	}
}

func TestRunnerHooks(t *testing.T) {
	h := &countingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	defer observability.Reset()

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), Options{Params: sampleParams()}); err != nil {
		t.Fatal(err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.builds != 1 || h.renders != 1 {
		t.Errorf("builds=%d renders=%d, want 1 each", h.builds, h.renders)
	}
	if h.misses != 1 || h.hits != 0 {
		t.Errorf("hits=%d misses=%d, want 0/1 with a null cache", h.hits, h.misses)
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu              sync.Mutex
	builds, renders int
	hits, misses    int
}

func (h *countingHooks) OnBuildStart(context.Context, int) {
	h.mu.Lock()
	h.builds++
	h.mu.Unlock()
}

func (h *countingHooks) OnRenderStart(context.Context, []string) {
	h.mu.Lock()
	h.renders++
	h.mu.Unlock()
}

func (h *countingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	h.hits++
	h.mu.Unlock()
}

func (h *countingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	h.misses++
	h.mu.Unlock()
}
