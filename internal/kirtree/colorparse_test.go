package kirtree

import "testing"

func TestParseColorHex(t *testing.T) {
	c := ParseColor("#ff8000")
	if c.Kind != ColorSolid || c.Solid != (RGBA{255, 128, 0, 255}) {
		t.Errorf("hex6 = %+v", c)
	}
	c = ParseColor("#ff800080")
	if c.Solid.A != 0x80 {
		t.Errorf("hex8 alpha = %d", c.Solid.A)
	}
	c = ParseColor("#zzz")
	if c.Solid != (RGBA{255, 255, 255, 255}) {
		t.Errorf("bad hex should default to opaque white, got %+v", c.Solid)
	}
}

func TestParseColorNamed(t *testing.T) {
	cases := map[string]RGBA{
		"red":    {255, 0, 0, 255},
		"RED":    {255, 0, 0, 255}, // case-insensitive
		"Navy":   {0, 0, 128, 255},
		"nosuch": {255, 255, 255, 255}, // unknown defaults to opaque white
	}
	for name, want := range cases {
		if got := ParseColor(name).Solid; got != want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", name, got, want)
		}
	}
}

func TestParseColorTransparent(t *testing.T) {
	c := ParseColor("transparent")
	if c.Kind != ColorTransparent {
		t.Errorf("transparent kind = %v", c.Kind)
	}
}

func TestParseColorRGBA(t *testing.T) {
	c := ParseColor("rgba(10, 20, 30, 0.5)")
	want := RGBA{10, 20, 30, 127}
	if c.Solid != want {
		t.Errorf("rgba = %+v, want %+v", c.Solid, want)
	}
	c = ParseColor("rgb(300, -5, 0)")
	if c.Solid.R != 255 || c.Solid.G != 0 {
		t.Errorf("rgb clamp = %+v", c.Solid)
	}
}

func TestParseColorThemeVar(t *testing.T) {
	c := ParseColor("$primary")
	if c.Kind != ColorVarRef || c.VarRef != "primary" {
		t.Errorf("$var = %+v", c)
	}
	c = ParseColor("var(--accent)")
	if c.Kind != ColorVarRef || c.VarRef != "accent" {
		t.Errorf("var(--) = %+v", c)
	}
}

func TestGradientStopLimit(t *testing.T) {
	g := &Gradient{Kind: GradientLinear}
	for i := 0; i < MaxGradientStops; i++ {
		if !g.AddStop(GradientStop{Position: float64(i) / 8}) {
			t.Fatalf("AddStop %d rejected", i)
		}
	}
	if g.AddStop(GradientStop{Position: 1}) {
		t.Error("stop past the limit was accepted")
	}
	if len(g.Stops) != MaxGradientStops {
		t.Errorf("stops = %d", len(g.Stops))
	}
}
