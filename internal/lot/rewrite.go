package lot

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// timerGlyph anchors phrase insertion when a text carries no duration
// mention yet.
const timerGlyph = "⏱"

// hyphenClass covers the dash lookalikes sellers paste into "1 ч - 3 часа"
// style price ratios.
const hyphenClass = `[-\x{2010}-\x{2015}\x{2212}\x{FE58}\x{FE63}\x{FF0D}]`

// Duration mentions as they appear inside titles. Alternatives are ordered
// longest-first because the matcher is first-match, not longest-match.
const (
	ruHourUnits = `(?:часов|часа|час|ч\.|ч)`
	ruDayUnits  = `(?:дней|день|дня|дн)`
	enHourUnits = `(?:hours|hour|hrs|hr|h)`
	enDayUnits  = `(?:days|day|d)`
	number      = `\d+(?:[.,]\d+)?`
)

// rewriteRule is one entry of a locale's pattern cascade. Rules are tried
// in order, the first rule that matches anywhere wins and every one of its
// occurrences is replaced. The matcher cannot express word boundaries for
// Cyrillic, so boundary checks run separately on the runes around each
// candidate match.
type rewriteRule struct {
	re         *regexp.Regexp
	checkLeft  bool
	checkRight bool
	replace    func(groups []string, hours float64) string
}

var ruRewriteRules = []rewriteRule{
	// Price ratio "1 ч = N часов": only the right operand changes.
	{
		re:         regexp.MustCompile(`(?i)(1\s*(?:часов|часа|час|ч)?\.?\s*(?:` + hyphenClass + `|=)\s*)` + number + `\s*` + ruHourUnits),
		checkLeft:  true,
		checkRight: true,
		replace: func(groups []string, hours float64) string {
			return groups[1] + HoursPhraseRU(hours)
		},
	},
	{
		re:         regexp.MustCompile(`(?i)(?:на|от)\s*` + number + `\s*` + ruHourUnits),
		checkLeft:  true,
		checkRight: true,
		replace:    ruTarget,
	},
	{
		re:         regexp.MustCompile(`(?i)(?:на|от)\s*` + number + `\s*` + ruDayUnits),
		checkLeft:  true,
		checkRight: true,
		replace:    ruTarget,
	},
	{
		re:         regexp.MustCompile(`(?i)` + number + `\s*(?:часов|часа|час)(?:\s*аренды)?`),
		checkLeft:  true,
		checkRight: true,
		replace:    ruTarget,
	},
	{
		re:         regexp.MustCompile(`(?i)(?:•\s*)?аренда\s*` + number + `\s*ч\.?`),
		checkRight: true,
		replace:    ruTarget,
	},
}

var enRewriteRules = []rewriteRule{
	{
		re:         regexp.MustCompile(`(?i)(?:for|from)\s*` + number + `\s*` + enHourUnits),
		checkLeft:  true,
		checkRight: true,
		replace:    enTarget,
	},
	{
		re:         regexp.MustCompile(`(?i)(?:for|from)\s*` + number + `\s*` + enDayUnits),
		checkLeft:  true,
		checkRight: true,
		replace:    enTarget,
	},
	{
		re:         regexp.MustCompile(`(?i)(?:•\s*)?rental\s*` + number + `\s*(?:hrs|hr|h)`),
		checkRight: true,
		replace:    enTarget,
	},
	{
		re:         regexp.MustCompile(`(?i)(?:•\s*)?rental\s*` + number + `\s*` + enDayUnits),
		checkRight: true,
		replace:    enTarget,
	},
	{
		re:         regexp.MustCompile(`(?i)` + number + `\s*(?:hours|hour|days|day)(?:\s*rental)?`),
		checkLeft:  true,
		checkRight: true,
		replace:    enTarget,
	},
}

func ruTarget(_ []string, hours float64) string {
	return "на " + DurationPhraseRU(hours)
}

func enTarget(_ []string, hours float64) string {
	return "for " + DurationPhraseEN(hours)
}

// RewriteDuration replaces the duration mention embedded in text with prose
// for the requested hours. When no cascade rule matches and allowInsert is
// set, the phrase is inserted before a ⏱ marker if present, otherwise
// appended. Text outside matched spans is never touched.
func RewriteDuration(text string, hours float64, loc Locale, allowInsert bool) string {
	if text == "" {
		return text
	}
	rules := ruRewriteRules
	target := "на " + DurationPhraseRU(hours)
	insert := " " + target + " "
	if loc == LocaleEN {
		rules = enRewriteRules
		target = "for " + DurationPhraseEN(hours)
		insert = " • " + target + " "
	}

	for _, rule := range rules {
		if out, replaced := rule.apply(text, hours); replaced > 0 {
			return out
		}
	}

	if !allowInsert {
		return text
	}
	if idx := strings.Index(text, timerGlyph); idx >= 0 {
		head := strings.TrimRightFunc(text[:idx], unicode.IsSpace)
		return head + insert + text[idx:]
	}
	if !strings.Contains(text, target) {
		return strings.TrimSpace(text + insert)
	}
	return text
}

// apply replaces every boundary-valid occurrence of the rule in text and
// reports how many it replaced.
func (r rewriteRule) apply(text string, hours float64) (string, int) {
	matches := r.re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, 0
	}
	var b strings.Builder
	last := 0
	replaced := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if !r.boundaryOK(text, start, end) {
			continue
		}
		b.WriteString(text[last:start])
		b.WriteString(r.replace(submatches(text, m), hours))
		last = end
		replaced++
	}
	if replaced == 0 {
		return text, 0
	}
	b.WriteString(text[last:])
	return b.String(), replaced
}

func (r rewriteRule) boundaryOK(text string, start, end int) bool {
	if r.checkLeft && start > 0 {
		prev, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(prev) {
			return false
		}
	}
	if r.checkRight && end < len(text) {
		next, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(next) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func submatches(text string, idx []int) []string {
	groups := make([]string, 0, len(idx)/2)
	for i := 0; i < len(idx); i += 2 {
		if idx[i] < 0 {
			groups = append(groups, "")
			continue
		}
		groups = append(groups, text[idx[i]:idx[i+1]])
	}
	return groups
}
