package cli

import (
	"strings"
	"testing"

	"github.com/Fepozopo/grade/pkg/grade"
)

func TestResolveParam(t *testing.T) {
	cases := map[string]string{
		"1":          "brightness",
		"14":         "highlights",
		"gn":         "gain",
		"-md":        "midtones",
		"Exposure":   "exposure",
		"temp":       "temperature",
		"hueB":       "hueBlue",
		"highlights": "highlights",
	}
	for in, want := range cases {
		p, err := ResolveParam(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if p.Name != want {
			t.Fatalf("%q: got %s want %s", in, p.Name, want)
		}
	}
}

func TestResolveParamErrors(t *testing.T) {
	for _, in := range []string{"", "0", "15", "sharpen"} {
		if _, err := ResolveParam(in); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
	_, err := ResolveParam("hue")
	if err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Fatalf("expected ambiguous selection error, got %v", err)
	}
}

func TestFormatSettings(t *testing.T) {
	if got := FormatSettings(grade.Defaults()); got != "neutral" {
		t.Fatalf("got %q", got)
	}
	s := grade.Defaults()
	s.Brightness = -5
	s.Gamma = 1.5
	if got := FormatSettings(s); got != "brightness=-5 gamma=1.5" {
		t.Fatalf("got %q", got)
	}
}

func TestParamTooltipAndMenu(t *testing.T) {
	p, _ := grade.LookupParam("gamma")
	tip := ParamTooltip(p, grade.Defaults())
	if !strings.Contains(tip, "gamma (-g)") || !strings.Contains(tip, "range (0, 4]") || !strings.Contains(tip, "current 1") {
		t.Fatalf("unexpected tooltip %q", tip)
	}
	menu := paramMenu(grade.Defaults())
	if lines := strings.Count(menu, "\n"); lines != len(grade.Params) {
		t.Fatalf("menu has %d lines, want %d", lines, len(grade.Params))
	}
	if !strings.HasPrefix(menu, "brightness: 0 - ") {
		t.Fatalf("unexpected first menu line in %q", menu)
	}
}
