package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type declaration struct {
	prop  string
	value string
}

func parseStyle(s string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(s, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.TrimSpace(value)
		if prop == "" {
			continue
		}
		decls = append(decls, declaration{prop: prop, value: value})
	}
	return decls
}

func formatStyle(decls []declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.prop+": "+d.value)
	}
	s := strings.Join(parts, "; ")
	if s != "" {
		s += ";"
	}
	return s
}

// Style returns the inline value of the CSS property prop on the first
// element of sel, or "".
func Style(sel *goquery.Selection, prop string) string {
	prop = strings.ToLower(prop)
	for _, d := range parseStyle(sel.AttrOr("style", "")) {
		if d.prop == prop {
			return d.value
		}
	}
	return ""
}

// SetStyle sets the inline CSS property prop on every element of sel. An
// existing declaration keeps its position; an empty value removes it.
func SetStyle(sel *goquery.Selection, prop, value string) {
	prop = strings.ToLower(strings.TrimSpace(prop))
	value = strings.TrimSpace(value)
	sel.Each(func(_ int, s *goquery.Selection) {
		decls := parseStyle(s.AttrOr("style", ""))
		found := false
		out := decls[:0]
		for _, d := range decls {
			if d.prop == prop {
				found = true
				if value == "" {
					continue
				}
				d.value = value
			}
			out = append(out, d)
		}
		if !found && value != "" {
			out = append(out, declaration{prop: prop, value: value})
		}
		if len(out) == 0 {
			s.RemoveAttr("style")
			return
		}
		s.SetAttr("style", formatStyle(out))
	})
}

// CSSProperty converts a CSSOM camelCase name (pointerEvents) to its CSS
// form (pointer-events). Names already containing a dash are returned as is.
func CSSProperty(name string) string {
	if strings.Contains(name, "-") {
		return strings.ToLower(name)
	}
	var b strings.Builder
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
