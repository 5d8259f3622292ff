package descriptor

import "strings"

// PreviewValue is what a prepare function hands back to the platform.
type PreviewValue struct {
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Media    any    `json:"media,omitempty" yaml:"media,omitempty"`
}

// Preview describes how the platform lists a value: a key selection and an
// optional prepare function over the selected values.
type Preview struct {
	// Select maps output keys to dotted field paths.
	Select  map[string]string                         `json:"select,omitempty" yaml:"select,omitempty"`
	Prepare func(selected map[string]any) PreviewValue `json:"-" yaml:"-"`
}

// Selection extracts the selected values from v. Dotted paths descend into
// nested objects; missing segments yield nil.
func (p *Preview) Selection(v map[string]any) map[string]any {
	if p == nil {
		return nil
	}
	out := make(map[string]any, len(p.Select))
	for key, path := range p.Select {
		out[key] = lookupPath(v, path)
	}
	return out
}

// Apply runs the projection over v. Without a prepare function the selection
// keys title/subtitle/media are used verbatim.
func (p *Preview) Apply(v map[string]any) PreviewValue {
	sel := p.Selection(v)
	if p == nil {
		return PreviewValue{}
	}
	if p.Prepare != nil {
		return p.Prepare(sel)
	}
	title, _ := sel["title"].(string)
	subtitle, _ := sel["subtitle"].(string)
	return PreviewValue{Title: title, Subtitle: subtitle, Media: sel["media"]}
}

func lookupPath(v map[string]any, path string) any {
	var cur any = v
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[seg]
	}
	return cur
}
