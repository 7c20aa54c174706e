package countdown

import (
	"fmt"
	"time"
)

// Remaining is the time left until a target, split the way the counters show it.
type Remaining struct {
	Days         int  `json:"days"`
	Hours        int  `json:"hours"`
	Minutes      int  `json:"minutes"`
	Seconds      int  `json:"seconds"`
	Milliseconds int  `json:"milliseconds"`
	Finished     bool `json:"finished"`
}

func Until(now time.Time, target time.Time) Remaining {
	diff := target.Sub(now)
	if diff < 0 {
		return Remaining{Finished: true}
	}

	ms := diff.Milliseconds()
	return Remaining{
		Days:         int(ms / (24 * 60 * 60 * 1000)),
		Hours:        int(ms % (24 * 60 * 60 * 1000) / (60 * 60 * 1000)),
		Minutes:      int(ms % (60 * 60 * 1000) / (60 * 1000)),
		Seconds:      int(ms % (60 * 1000) / 1000),
		Milliseconds: int(ms % 1000),
	}
}

// Format renders the counter as "D-123 | 04:05:06.789". Finished counters
// render as an empty string; the caller shows a quote instead.
func (r Remaining) Format() string {
	if r.Finished {
		return ""
	}
	return fmt.Sprintf("D-%03d | %02d:%02d:%02d.%03d", r.Days, r.Hours, r.Minutes, r.Seconds, r.Milliseconds)
}

// FormatTimer renders a subject timer as "mm:ss.mmm". Negative durations count as zero.
func FormatTimer(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, ms/1000%60, ms%1000)
}
