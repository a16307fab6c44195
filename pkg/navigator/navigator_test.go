package navigator

import (
	"errors"
	"testing"

	"github.com/joshvictor1024/mandelbrot-zoom/pkg/escape"
	"github.com/joshvictor1024/mandelbrot-zoom/pkg/viewport"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 80
	cfg.Height = 60
	cfg.MaxIter = 200
	return cfg
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"default", func(*Config) {}, nil},
		{"zero width", func(c *Config) { c.Width = 0 }, ErrInvalidGrid},
		{"negative height", func(c *Config) { c.Height = -1 }, ErrInvalidGrid},
		{"zero max iter", func(c *Config) { c.MaxIter = 0 }, ErrInvalidGrid},
		{"empty region", func(c *Config) { c.Region.MaxRe = c.Region.MinRe }, viewport.ErrInvalidRegion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}

	for _, f := range []float64{0, 1, 1.5, -0.5} {
		cfg := DefaultConfig()
		cfg.ZoomFactor = f
		if cfg.Validate() == nil {
			t.Errorf("zoom factor %v accepted", f)
		}
	}
	cfg := DefaultConfig()
	cfg.PanStep = 0
	if cfg.Validate() == nil {
		t.Error("pan step 0 accepted")
	}
}

func TestNavigator_Lifecycle(t *testing.T) {
	n, err := New(smallConfig())
	if err != nil {
		t.Fatal(err)
	}

	if n.State() != Idle || !n.Dirty() || n.Field() != nil {
		t.Fatalf("new navigator: state %v dirty %v field %v", n.State(), n.Dirty(), n.Field())
	}

	f, ok := n.Refresh()
	if !ok || f == nil {
		t.Fatal("first Refresh() produced no field")
	}
	if n.Dirty() || n.State() != Idle {
		t.Errorf("after Refresh: dirty %v state %v", n.Dirty(), n.State())
	}

	again, ok := n.Refresh()
	if ok {
		t.Error("Refresh() on a clean navigator recomputed")
	}
	if again != f {
		t.Error("Refresh() on a clean navigator returned a different field")
	}
}

func TestNavigator_ApplyMarksDirty(t *testing.T) {
	n, _ := New(smallConfig())
	n.Refresh()
	before := n.Viewport()

	if !n.Apply(Pan{Direction: viewport.Right}) {
		t.Fatal("Apply(Pan) rejected")
	}
	if !n.Dirty() {
		t.Error("Apply(Pan) did not mark dirty")
	}
	if n.Viewport() == before {
		t.Error("Apply(Pan) did not move the viewport")
	}

	f, ok := n.Refresh()
	if !ok {
		t.Fatal("Refresh() after Apply did not recompute")
	}
	want := escape.Compute(n.Viewport(), 80, 60, 200)
	if !f.Equal(want) {
		t.Error("recomputed field does not match a fresh Compute")
	}
}

func TestNavigator_ZoomUsesGrid(t *testing.T) {
	n, _ := New(smallConfig())
	before := n.Viewport()
	anchor := before.PixelToPlane(20, 45, 80, 60)

	n.Apply(Zoom{CursorX: 20, CursorY: 45, In: true})

	after := n.Viewport()
	got := after.PixelToPlane(20, 45, 80, 60)
	if d := got.X - anchor.X; d > 1e-12 || d < -1e-12 {
		t.Errorf("anchor re moved by %v", d)
	}
	if d := got.Y - anchor.Y; d > 1e-12 || d < -1e-12 {
		t.Errorf("anchor im moved by %v", d)
	}
	if after.ReSpan() >= before.ReSpan() {
		t.Errorf("zoom in did not shrink: %v -> %v", before.ReSpan(), after.ReSpan())
	}
}

func TestNavigator_RejectedZoomStaysClean(t *testing.T) {
	cfg := smallConfig()
	cfg.Limits = viewport.Limits{MinSpan: 2.5, MaxSpan: 100}
	n, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	n.Refresh()

	before := n.Viewport()
	if n.Apply(Zoom{CursorX: 40, CursorY: 30, In: true}) {
		t.Fatal("zoom below MinSpan accepted")
	}
	if n.Dirty() {
		t.Error("rejected zoom marked navigator dirty")
	}
	if n.Viewport() != before {
		t.Error("rejected zoom moved the viewport")
	}
}

func TestNavigator_StateDuringRender(t *testing.T) {
	var n *Navigator
	var seen State = -1
	render := func(v viewport.Viewport, w, h, maxIter int) *escape.Field {
		seen = n.State()
		return escape.Compute(v, w, h, maxIter)
	}

	n, _ = New(smallConfig(), WithRenderFunc(render))
	n.Refresh()

	if seen != Recomputing {
		t.Errorf("state during render = %v, want %v", seen, Recomputing)
	}
	if n.State() != Idle {
		t.Errorf("state after render = %v, want %v", n.State(), Idle)
	}
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{Zoom{CursorX: 1, CursorY: 2, In: true}, "zoom in at (1, 2)"},
		{Zoom{CursorX: 3, CursorY: 4}, "zoom out at (3, 4)"},
		{Pan{Direction: viewport.Up}, "pan up"},
	}
	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
