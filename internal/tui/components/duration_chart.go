package components

import (
	"fmt"

	"github.com/Advait-MD/Conductor/internal/tui/styles"

	"github.com/NimbleMarkets/ntcharts/sparkline"
)

// sparklineHeight keeps the duration sparkline to a single row so it
// fits inside the output pane title.
const sparklineHeight = 1

// DurationSparkline renders recent run durations (in seconds) as a
// compact sparkline followed by a latest/max caption. Returns an empty
// string when there is nothing to plot.
func DurationSparkline(durations []float64, plotWidth int) string {
	if len(durations) == 0 || plotWidth < 4 {
		return ""
	}

	sl := sparkline.New(plotWidth, sparklineHeight)
	sl.PushAll(durations)
	sl.Draw()

	latest := durations[len(durations)-1]
	maxVal := durations[0]
	for _, v := range durations[1:] {
		if v > maxVal {
			maxVal = v
		}
	}

	caption := styles.MutedText.Render(
		fmt.Sprintf(" %s · max %s", FormatSeconds(latest), FormatSeconds(maxVal)),
	)
	return styles.AccentText.Render(sl.View()) + caption
}

// FormatSeconds renders a duration in seconds at status-row precision.
func FormatSeconds(v float64) string {
	switch {
	case v < 1:
		return fmt.Sprintf("%dms", int(v*1000))
	case v < 60:
		return fmt.Sprintf("%.1fs", v)
	default:
		return fmt.Sprintf("%dm%02ds", int(v)/60, int(v)%60)
	}
}
