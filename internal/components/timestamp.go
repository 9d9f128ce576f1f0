package components

import (
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/warpdl/pagekit/internal/dom"
	"github.com/warpdl/pagekit/pkg/timers"
)

const (
	TimestampName = "timestamp"

	// TimestampKey is the timer slot shared by every timestamp mount, so a
	// remount before the fade replaces the pending fade.
	TimestampKey = "timestamp"

	TimestampFadeDelay   = 250 * time.Millisecond
	TimestampActiveClass = "text-green-600"
	TimestampFadedClass  = "text-slate-600"

	timestampTarget = "#timestamp span"
)

// Timestamp schedules the fade of the freshly rendered timestamp under root:
// after TimestampFadeDelay the span loses TimestampActiveClass in favour of
// TimestampFadedClass.
func Timestamp(root *goquery.Selection, reg *timers.Registry) {
	reg.SetTimeout(TimestampKey, fadeTimestamp(root), TimestampFadeDelay)
}

func fadeTimestamp(root *goquery.Selection) func() {
	return func() {
		dom.ReplaceClass(root.Find(timestampTarget), TimestampActiveClass, TimestampFadedClass)
	}
}
