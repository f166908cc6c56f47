package lot

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const hoursPerDay = 24

var (
	durationSplitRE = regexp.MustCompile(`[,;\s]+`)
	// Unit alternatives ordered longest-first, same as the rewrite rules.
	durationTokenRE = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)(часов|часа|час|ч\.|ч|дней|день|дня|дн|д|h|d)?$`)
)

// ParseDurations extracts rental durations in hours from free-form text.
// Tokens are numbers with an optional hour or day unit, a bare number means
// hours. Unparseable tokens are dropped; the result is de-duplicated,
// rounded to two decimals and sorted ascending.
func ParseDurations(text string) []float64 {
	tokens := durationSplitRE.Split(strings.ToLower(strings.TrimSpace(text)), -1)
	seen := make(map[float64]struct{}, len(tokens))
	durations := make([]float64, 0, len(tokens))
	for _, token := range tokens {
		if token == "" {
			continue
		}
		m := durationTokenRE.FindStringSubmatch(token)
		if m == nil {
			continue
		}
		value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		if err != nil {
			continue
		}
		hours := value
		if isDayUnit(m[2]) {
			hours = value * hoursPerDay
		}
		hours = roundHours(hours)
		if hours < 0.01 {
			continue
		}
		if _, ok := seen[hours]; ok {
			continue
		}
		seen[hours] = struct{}{}
		durations = append(durations, hours)
	}
	sort.Float64s(durations)
	return durations
}

func isDayUnit(unit string) bool {
	switch unit {
	case "d", "д", "дн", "день", "дня", "дней":
		return true
	}
	return false
}

func roundHours(v float64) float64 {
	return math.Round(v*100) / 100
}
