package lot

import (
	"math"
	"strconv"
)

// Locale selects the language of generated duration prose.
type Locale string

const (
	LocaleRU Locale = "ru"
	LocaleEN Locale = "en"
)

const integerEpsilon = 1e-9

type pluralForms struct {
	one, few, many string
}

var (
	ruHourForms = pluralForms{"час", "часа", "часов"}
	ruDayForms  = pluralForms{"день", "дня", "дней"}
)

// HoursString renders an hour value without a trailing ".0":
// 24 -> "24", 0.5 -> "0.5".
func HoursString(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}

func isWhole(v float64) bool {
	return math.Abs(v-math.Round(v)) < integerEpsilon
}

// wholeDays reports the day count when hours is a whole multiple of 24 of
// at least one day.
func wholeDays(hours float64) (int64, bool) {
	if !isWhole(hours) {
		return 0, false
	}
	h := int64(math.Round(hours))
	if h >= hoursPerDay && h%hoursPerDay == 0 {
		return h / hoursPerDay, true
	}
	return 0, false
}

// pluralRU picks the grammatical form for a Russian numeral. Fractional
// numerals always take the many form, integers follow the
// last-two-digits / last-digit rule (11-19 -> many, 1 -> one,
// 2-4 -> few, rest -> many).
func pluralRU(n float64, forms pluralForms) string {
	if !isWhole(n) {
		return forms.many
	}
	v := int64(math.Round(n)) % 100
	if v >= 11 && v <= 19 {
		return forms.many
	}
	switch v % 10 {
	case 1:
		return forms.one
	case 2, 3, 4:
		return forms.few
	}
	return forms.many
}

// HoursPhraseRU renders hours as Russian prose, always in hour units.
func HoursPhraseRU(hours float64) string {
	return HoursString(hours) + " " + pluralRU(hours, ruHourForms)
}

// DurationPhraseRU renders a duration as Russian prose, switching to day
// units for whole multiples of 24 hours.
func DurationPhraseRU(hours float64) string {
	if days, ok := wholeDays(hours); ok {
		return strconv.FormatInt(days, 10) + " " + pluralRU(float64(days), ruDayForms)
	}
	return HoursPhraseRU(hours)
}

// DurationPhraseEN renders a duration as English prose.
func DurationPhraseEN(hours float64) string {
	if days, ok := wholeDays(hours); ok {
		if days == 1 {
			return "1 day"
		}
		return strconv.FormatInt(days, 10) + " days"
	}
	if isWhole(hours) && math.Abs(hours-1) < integerEpsilon {
		return "1 hour"
	}
	return HoursString(hours) + " hours"
}

// ShortDuration is the compact preview form: "2 д" or "6 ч".
func ShortDuration(hours float64) string {
	if days, ok := wholeDays(hours); ok {
		return strconv.FormatInt(days, 10) + " д"
	}
	return HoursString(hours) + " ч"
}
