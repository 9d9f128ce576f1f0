package components

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/warpdl/pagekit/internal/dom"
	"github.com/warpdl/pagekit/pkg/logger"
	"github.com/warpdl/pagekit/pkg/timers"
)

// MountAttr names the behaviors to attach to an element, space separated:
// <nav data-mount="navbar">.
const MountAttr = "data-mount"

// Mount attaches the behaviors named by MountAttr to every element of doc and
// returns the number of behaviors mounted. Unknown names are logged and
// skipped. Timers are scheduled on reg; mutations they make happen on reg's
// loop.
func Mount(doc *dom.Document, reg *timers.Registry, l logger.Logger) int {
	if l == nil {
		l = logger.NewNopLogger()
	}
	mounted := 0
	doc.Root().Find("[" + MountAttr + "]").Each(func(_ int, el *goquery.Selection) {
		for _, name := range strings.Fields(el.AttrOr(MountAttr, "")) {
			switch name {
			case NavbarName:
				n := Navbar(el, doc.Location())
				l.Debug("navbar: disabled %d link(s)", n)
			case TimestampName:
				Timestamp(el, reg)
				l.Debug("timestamp: fade scheduled in %v", TimestampFadeDelay)
			default:
				l.Warning("mount: unknown component %q", name)
				continue
			}
			mounted++
		}
	})
	l.Info("mounted %d component(s) in the render context", mounted)
	return mounted
}
