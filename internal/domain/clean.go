package domain

import "strings"

// CleanInteger keeps digits and minus signs, dropping stray markers such as
// the "*" in "86*".
func CleanInteger(s string) (string, error) {
	cleaned := keepOnly(s, func(r rune) bool { return isDigit(r) || r == '-' })
	if cleaned == "" {
		return "", ErrEmptyAfterCleaning
	}
	return cleaned, nil
}

// CleanPopulation keeps digits only. Thousand separators of any kind
// ("83,120,520", "83 120 520") disappear, and so does a leading minus:
// populations are never negative.
func CleanPopulation(s string) (string, error) {
	cleaned := keepOnly(s, isDigit)
	if cleaned == "" {
		return "", ErrEmptyAfterCleaning
	}
	return cleaned, nil
}

// NormalizeDecimalSeparators keeps digits, commas and dots and turns every
// comma into a dot: "1.234,56" becomes "1.234.56".
func NormalizeDecimalSeparators(s string) string {
	return strings.ReplaceAll(keepOnly(s, isAreaRune), ",", ".")
}

// CollapseDecimal keeps the last dot as the decimal point and removes every
// earlier one: "1.234.56" becomes "1234.56".
func CollapseDecimal(s string) string {
	last := strings.LastIndexByte(s, '.')
	if last < 0 {
		return s
	}
	return strings.ReplaceAll(s[:last], ".", "") + s[last:]
}

// CleanArea turns a loosely formatted real number into a literal that
// strconv.ParseFloat accepts.
//
// A separator kind (comma or dot) that repeats while the other kind is absent
// is a grouping mark and is dropped ("1,234,567" -> "1234567"). Such groups
// must be 1-3 leading digits followed by groups of exactly three, so
// malformed input like "12.5." is ErrNotNumeric. Otherwise the last separator
// is the decimal point and earlier ones are grouping marks ("1.234,56" ->
// "1234.56", "30,5" -> "30.5").
func CleanArea(s string) (string, error) {
	stripped := keepOnly(s, isAreaRune)
	if stripped == "" {
		return "", ErrEmptyAfterCleaning
	}

	commas := strings.Count(stripped, ",")
	dots := strings.Count(stripped, ".")
	switch {
	case commas+dots == 0:
		return stripped, nil
	case (commas == 0 || dots == 0) && commas+dots > 1:
		digits := keepOnly(stripped, isDigit)
		if digits == "" {
			return "", ErrEmptyAfterCleaning
		}
		sep := ","
		if dots > 0 {
			sep = "."
		}
		if !isThousandsGrouped(stripped, sep) {
			return "", ErrNotNumeric
		}
		return digits, nil
	default:
		return CollapseDecimal(NormalizeDecimalSeparators(stripped)), nil
	}
}

// isThousandsGrouped reports whether s is digit groups joined by sep with
// every group after the first exactly three digits long.
func isThousandsGrouped(s, sep string) bool {
	groups := strings.Split(s, sep)
	if n := len(groups[0]); n < 1 || n > 3 {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
	}
	return true
}

func keepOnly(s string, keep func(rune) bool) string {
	return strings.Map(func(r rune) rune {
		if keep(r) {
			return r
		}
		return -1
	}, s)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isAreaRune(r rune) bool { return isDigit(r) || r == ',' || r == '.' }
