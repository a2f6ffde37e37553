package analytics

import (
	"math"
	"strings"
	"time"
)

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round1(float64(part) / float64(whole) * 100)
}

// wholeDays mirrors timedelta semantics: complete 24h periods, truncated.
func wholeDays(d time.Duration) int {
	return int(d.Hours() / 24)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}

// mentionsBlock flags issues whose text marks them blocked. A heuristic
// over subject and description, there is no blocked status in the tracker.
func mentionsBlock(subject, description string) bool {
	return containsFold(subject, "block") || containsFold(description, "block")
}

func mentionsReopen(subject, description string) bool {
	return containsFold(subject, "reopen") || containsFold(description, "reopen")
}

func isHighPriority(name string) bool {
	switch name {
	case "High", "Urgent", "Immediate":
		return true
	}
	return false
}
