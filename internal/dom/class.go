package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ReplaceClass replaces the class token old with repl on every element of
// sel that has old, keeping its position in the class list, the way
// DOMTokenList.replace does. It reports whether any element changed.
func ReplaceClass(sel *goquery.Selection, old, repl string) bool {
	changed := false
	sel.Each(func(_ int, s *goquery.Selection) {
		tokens := strings.Fields(s.AttrOr("class", ""))
		idx := -1
		for i, tok := range tokens {
			if tok == old {
				idx = i
				break
			}
		}
		if idx < 0 {
			return
		}
		out := make([]string, 0, len(tokens))
		seen := make(map[string]bool, len(tokens))
		for i, tok := range tokens {
			if i == idx {
				tok = repl
			}
			if (i != idx && tok == old) || seen[tok] {
				continue
			}
			seen[tok] = true
			out = append(out, tok)
		}
		s.SetAttr("class", strings.Join(out, " "))
		changed = true
	})
	return changed
}

// Classes returns the class tokens of the first element of sel.
func Classes(sel *goquery.Selection) []string {
	return strings.Fields(sel.AttrOr("class", ""))
}

// AddClass appends each token missing from the class list of every element
// of sel. Like DOMTokenList.add, the list is rewritten single-spaced and
// without duplicates.
func AddClass(sel *goquery.Selection, tokens ...string) {
	sel.Each(func(_ int, s *goquery.Selection) {
		updateClasses(s, append(strings.Fields(s.AttrOr("class", "")), tokens...), nil)
	})
}

// RemoveClass removes every occurrence of tokens from the class list of
// every element of sel, like DOMTokenList.remove.
func RemoveClass(sel *goquery.Selection, tokens ...string) {
	drop := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		drop[tok] = true
	}
	sel.Each(func(_ int, s *goquery.Selection) {
		updateClasses(s, strings.Fields(s.AttrOr("class", "")), drop)
	})
}

func updateClasses(s *goquery.Selection, tokens []string, drop map[string]bool) {
	out := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		if tok == "" || drop[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	if _, ok := s.Attr("class"); !ok && len(out) == 0 {
		return
	}
	s.SetAttr("class", strings.Join(out, " "))
}
