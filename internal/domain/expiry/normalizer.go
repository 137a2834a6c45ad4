// Package expiry normalizes free-form product expiry strings.
//
// An expiry value is a month/year in one of several serialized shapes
// (numeric or textual month, 2- or 4-digit year, dash/slash/no separator,
// month-first or year-first). Classify detects the shape and ApplyOffset
// advances the year while preserving the shape exactly.
package expiry

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// monthNames maps lowercase month names and abbreviations to month numbers.
var monthNames = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// Rule describes one recognized expiry serialization shape. The pattern
// always captures exactly two groups; MonthFirst tells which group holds
// the month and which the year.
type Rule struct {
	pattern    *regexp.Regexp
	YearWidth  int    // 2 or 4 digits
	Separator  string // "-", "/", or "" for compact forms
	MonthFirst bool
	TextMonth  bool
}

// rules is the ordered rule table. Order matters: the first structural
// match wins, and textual-month rules come before numeric rules of
// similar shape to avoid ambiguity.
var rules = []Rule{
	{pattern: regexp.MustCompile(`^([A-Za-z]+)-(\d{2})$`), YearWidth: 2, Separator: "-", MonthFirst: true, TextMonth: true},
	{pattern: regexp.MustCompile(`^([A-Za-z]+)-(\d{4})$`), YearWidth: 4, Separator: "-", MonthFirst: true, TextMonth: true},
	{pattern: regexp.MustCompile(`^([A-Za-z]+)/(\d{2})$`), YearWidth: 2, Separator: "/", MonthFirst: true, TextMonth: true},
	{pattern: regexp.MustCompile(`^([A-Za-z]+)/(\d{4})$`), YearWidth: 4, Separator: "/", MonthFirst: true, TextMonth: true},
	{pattern: regexp.MustCompile(`^(\d{1,2})/(\d{2})$`), YearWidth: 2, Separator: "/", MonthFirst: true},
	{pattern: regexp.MustCompile(`^(\d{1,2})-(\d{2})$`), YearWidth: 2, Separator: "-", MonthFirst: true},
	{pattern: regexp.MustCompile(`^(\d{1,2})/(\d{4})$`), YearWidth: 4, Separator: "/", MonthFirst: true},
	{pattern: regexp.MustCompile(`^(\d{1,2})-(\d{4})$`), YearWidth: 4, Separator: "-", MonthFirst: true},
	{pattern: regexp.MustCompile(`^(\d{4})/(\d{1,2})$`), YearWidth: 4, Separator: "/", MonthFirst: false},
	{pattern: regexp.MustCompile(`^(\d{4})-(\d{1,2})$`), YearWidth: 4, Separator: "-", MonthFirst: false},
	{pattern: regexp.MustCompile(`^(\d{2})(\d{2})$`), YearWidth: 2, Separator: "", MonthFirst: true},
	{pattern: regexp.MustCompile(`^(\d{2})(\d{4})$`), YearWidth: 4, Separator: "", MonthFirst: true},
}

// ParseResult holds a classified expiry value together with the rule that
// matched it.
type ParseResult struct {
	Month     int
	Year      int
	MonthText string // month exactly as written; empty for numeric rules
	Rule      Rule
}

// Classify trims the input and tests it against the rule table in priority
// order. It returns false for empty input, unrecognized shapes, unknown
// month names and numeric months outside [1,12].
func Classify(raw string) (ParseResult, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ParseResult{}, false
	}

	for _, rule := range rules {
		m := rule.pattern.FindStringSubmatch(value)
		if m == nil {
			continue
		}

		monthStr, yearStr := m[1], m[2]
		if !rule.MonthFirst {
			monthStr, yearStr = m[2], m[1]
		}

		var (
			month     int
			monthText string
		)
		if rule.TextMonth {
			n, ok := monthNames[strings.ToLower(monthStr)]
			if !ok {
				// Pattern matched syntactically but the name is not a
				// month; let later rules have a shot.
				continue
			}
			month = n
			monthText = monthStr
		} else {
			n, err := strconv.Atoi(monthStr)
			if err != nil || n < 1 || n > 12 {
				continue
			}
			month = n
		}

		year, err := strconv.Atoi(yearStr)
		if err != nil {
			continue
		}

		return ParseResult{
			Month:     month,
			Year:      year,
			MonthText: monthText,
			Rule:      rule,
		}, true
	}

	return ParseResult{}, false
}

// ApplyOffset renders the expiry with the year advanced by the given number
// of years, mirroring the shape of the matched rule. Two-digit years wrap
// modulo 100 (99+3 becomes 02); this matches the historical behavior and is
// kept as-is.
func ApplyOffset(p ParseResult, years int) string {
	newYear := p.Year + years

	var yearOut string
	if p.Rule.YearWidth == 2 {
		newYear = ((newYear % 100) + 100) % 100
		yearOut = fmt.Sprintf("%02d", newYear)
	} else {
		yearOut = fmt.Sprintf("%04d", newYear)
	}

	var monthOut string
	if p.Rule.TextMonth {
		monthOut = titleCase(p.MonthText)
	} else {
		monthOut = fmt.Sprintf("%02d", p.Month)
	}

	if p.Rule.MonthFirst {
		return monthOut + p.Rule.Separator + yearOut
	}
	return yearOut + p.Rule.Separator + monthOut
}

// Normalize classifies raw and applies the year offset in one step. It
// returns false when the input does not match any rule; callers treat that
// as "skip, do not modify".
func Normalize(raw string, years int) (string, bool) {
	parsed, ok := Classify(raw)
	if !ok {
		return "", false
	}
	return ApplyOffset(parsed, years), true
}

// titleCase capitalizes the first letter and lowercases the rest. Month
// text only ever contains ASCII letters, by construction of the rule table.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
