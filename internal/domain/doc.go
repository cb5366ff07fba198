// Package domain models the two input tables (daily weather, European
// countries) and turns their loosely formatted cells into typed records.
//
// # Weather table
//
// Comma separated. Required columns:
//
//	Day  day of month, integer
//	MxT  maximum temperature, integer
//	MnT  minimum temperature, integer
//
// Cells may carry stray markers, e.g. "86*" flags a monthly extreme and
// "59#" an estimated value. [CleanInteger] keeps digits and minus signs only.
// A row whose cell has nothing left after cleaning ("n/a", "") is dropped.
//
// # Countries table
//
// Semicolon separated. Required columns:
//
//	Name         country name, non-blank
//	Population   integer, thousand separators of any kind allowed ("83,120,520")
//	Area (km²)   real number, comma or dot decimal ("30528", "316,0", "1.234,56")
//
// Area normalization is done by [CleanArea]:
//
//	"316"           -> "316"         no separator
//	"30,5"          -> "30.5"        single separator is the decimal point
//	"1,234,567"     -> "1234567"     repeated single kind is grouping
//	"12.5."         -> error         grouping needs groups of three
//	"1.234,56"      -> "1234.56"     mixed kinds: last one is the decimal point
//	"1.234.567,89"  -> "1234567.89"
//
// # Derived metrics
//
//	spread  = MxT - MnT                (may be negative)
//	density = population / area        (0 when area is 0)
//
// # Failures
//
// Parsing never panics. A row that cannot become a record yields a
// [*RowParseError] wrapping [ErrMissingColumn], [ErrEmptyAfterCleaning] or
// [ErrNotNumeric]. Callers decide whether to drop or surface it.
package domain
