package components

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/warpdl/pagekit/internal/dom"
)

const (
	NavbarName = "navbar"

	// NavbarCurrentClass marks the link of the page being shown.
	NavbarCurrentClass = "text-slate-600"
)

// navbarInteractiveClasses are the hover/active styles a current link loses.
var navbarInteractiveClasses = []string{
	"hover:bg-blue-200",
	"hover:text-blue-700",
	"active:bg-blue-300",
}

// Navbar disables every anchor under root whose resolved href equals
// location: it stops pointer interaction, shows a not-allowed cursor and
// swaps the interactive styles for NavbarCurrentClass. It returns the number
// of anchors disabled.
func Navbar(root *goquery.Selection, location *url.URL) int {
	current := ""
	if location != nil {
		current = location.String()
	}
	disabled := 0
	root.Find("a").Each(func(_ int, a *goquery.Selection) {
		if dom.Href(a, location) != current {
			return
		}
		disableNavbarLink(a)
		disabled++
	})
	return disabled
}

func disableNavbarLink(a *goquery.Selection) {
	dom.SetStyle(a, "pointer-events", "none")
	dom.SetStyle(a, "cursor", "not-allowed")
	dom.RemoveClass(a, navbarInteractiveClasses...)
	dom.AddClass(a, NavbarCurrentClass)
}
