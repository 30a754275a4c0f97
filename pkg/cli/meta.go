package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Fepozopo/grade/pkg/grade"
)

// ParamTooltip describes a parameter and its current value.
func ParamTooltip(p grade.ParamSpec, s grade.Settings) string {
	return fmt.Sprintf("%s (-%s): %s\n  range %s, neutral %s, current %s",
		p.Name, p.Flag, p.Description, p.Range(), p.Format(p.Neutral), p.Format(p.Value(s)))
}

// ParamPrompt is the input label for a parameter value.
func ParamPrompt(p grade.ParamSpec) string {
	return fmt.Sprintf("%s (%s %s, empty to cancel): ", p.Name, p.Kind, p.Range())
}

// ResolveParam maps a typed selection to a parameter. It accepts a 1-based
// index into grade.Params, a name or flag, or an unambiguous name prefix.
func ResolveParam(selection string) (grade.ParamSpec, error) {
	selection = strings.TrimSpace(selection)
	if selection == "" {
		return grade.ParamSpec{}, fmt.Errorf("empty selection")
	}
	if idx, err := strconv.Atoi(selection); err == nil {
		if idx < 1 || idx > len(grade.Params) {
			return grade.ParamSpec{}, fmt.Errorf("invalid selection %d", idx)
		}
		return grade.Params[idx-1], nil
	}
	if p, ok := grade.LookupParam(selection); ok {
		return p, nil
	}
	lower := strings.ToLower(selection)
	var matches []grade.ParamSpec
	for _, p := range grade.Params {
		if strings.HasPrefix(strings.ToLower(p.Name), lower) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return grade.ParamSpec{}, fmt.Errorf("unknown parameter: %s", selection)
	case 1:
		return matches[0], nil
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Name
	}
	return grade.ParamSpec{}, fmt.Errorf("ambiguous selection, candidates: %s", strings.Join(names, ", "))
}

// FormatSettings lists the parameters that differ from neutral, one
// "name=value" per entry, or "neutral".
func FormatSettings(s grade.Settings) string {
	var parts []string
	for _, p := range grade.Params {
		if v := p.Value(s); v != p.Neutral {
			parts = append(parts, p.Name+"="+p.Format(v))
		}
	}
	if len(parts) == 0 {
		return "neutral"
	}
	return strings.Join(parts, " ")
}
