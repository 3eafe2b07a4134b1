// Package locale parses the site's en-GB formatted numbers, currency amounts
// and dates. The convention is fixed here rather than read from the process
// environment, so results do not depend on the machine's regional settings.
package locale

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CurrencySymbol is the symbol prefixed to monetary amounts.
const CurrencySymbol = "£"

// Date layouts used by the site.
const (
	DayMonthYear     = "02/01/2006"
	DayMonthNameYear = "02 Jan 2006"
	DateOfBirth      = "020106"
	ClockTime        = "15:04"
)

var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/2006 15:04",
	"02/01/2006 15:04:05",
	"2/1/2006 15:04",
	"02/01/06",
	"02 Jan 2006",
	"2 Jan 2006",
	"02 January 2006",
	"2 January 2006",
	"02-Jan-2006",
}

// digits with optional thousands separators and an optional fraction
var numberPattern = regexp.MustCompile(`^(?:\d[\d,]*(?:\.\d+)?|\.\d+)$`)

var spaceRun = regexp.MustCompile(`\s+`)

// Clean replaces non-breaking spaces, collapses whitespace runs and trims.
func Clean(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// ParseCurrency parses an amount such as "£1,234.56", "-£2.00" or "(£3.10)".
func ParseCurrency(s string) (decimal.Decimal, error) {
	return parse(s, true)
}

// ParseNumber parses a plain number such as "1,234.5678" or "-12.30".
// A currency symbol is rejected.
func ParseNumber(s string) (decimal.Decimal, error) {
	return parse(s, false)
}

// ParsePercentage parses a number with an optional trailing percent sign.
func ParsePercentage(s string) (decimal.Decimal, error) {
	return parse(strings.TrimSuffix(Clean(s), "%"), false)
}

// ParseNumberOrNull returns an invalid NullDecimal when s is blank or does
// not parse.
func ParseNumberOrNull(s string) decimal.NullDecimal {
	d, err := ParseNumber(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// ParseNumberOrDefault returns def when s is blank or does not parse.
func ParseNumberOrDefault(s string, def decimal.Decimal) decimal.Decimal {
	d, err := ParseNumber(s)
	if err != nil {
		return def
	}
	return d
}

func parse(raw string, currency bool) (decimal.Decimal, error) {
	s := Clean(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty number")
	}

	negative := false
	if currency && strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s, neg := stripSign(s)
	negative = negative != neg

	if currency {
		s = strings.TrimSpace(strings.TrimPrefix(s, CurrencySymbol))
		// "£-1.00" puts the sign after the symbol
		if rest, neg := stripSign(s); neg || rest != s {
			s = rest
			negative = negative != neg
		}
	}

	s = strings.ReplaceAll(s, " ", "")
	if !numberPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("invalid number %q", raw)
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q: %w", raw, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// stripSign removes one leading or trailing sign and reports whether it
// was negative.
func stripSign(s string) (string, bool) {
	switch {
	case strings.HasPrefix(s, "-"):
		return strings.TrimSpace(s[1:]), true
	case strings.HasPrefix(s, "+"):
		return strings.TrimSpace(s[1:]), false
	case strings.HasSuffix(s, "-"):
		return strings.TrimSpace(s[:len(s)-1]), true
	case strings.HasSuffix(s, "+"):
		return strings.TrimSpace(s[:len(s)-1]), false
	}
	return s, false
}

// ParseDate parses a date, optionally followed by a time, in day-first
// order. The result is in UTC.
func ParseDate(s string) (time.Time, error) {
	s = Clean(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// ParseExact parses s with a single layout in UTC.
func ParseExact(layout, s string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, Clean(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
