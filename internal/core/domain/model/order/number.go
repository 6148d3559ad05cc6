package order

import (
	"fmt"

	"shop/internal/pkg/errs"
)

// Order numbers are year-scoped: the sequence restarts at 1 every calendar year
// and the stored value packs year and sequence into one integer, e.g. sequence
// 42 of 2026 is stored as 202600042 and printed as "2026-00042".
const sequencePerYear = 100000

// ComposeNumber packs a year and a per-year sequence into the stored form.
func ComposeNumber(year, sequence int) (int, error) {
	if year < 1000 || year > 9999 {
		return 0, errs.NewValueIsOutOfRangeError("year", year, 1000, 9999)
	}
	if sequence < 1 || sequence >= sequencePerYear {
		return 0, errs.NewValueIsOutOfRangeError("sequence", sequence, 1, sequencePerYear-1)
	}

	return year*sequencePerYear + sequence, nil
}

// FormatNumber renders a stored number as "YYYY-NNNNN".
func FormatNumber(number int) string {
	return fmt.Sprintf("%04d-%05d", number/sequencePerYear, number%sequencePerYear)
}

// ResolveNumber parses "YYYY-NNNNN" back into the stored form. It is the exact
// inverse of FormatNumber.
func ResolveNumber(formatted string) (int, error) {
	var year, sequence int
	if _, err := fmt.Sscanf(formatted, "%4d-%5d", &year, &sequence); err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("number", err)
	}
	if len(formatted) != 10 {
		return 0, errs.NewValueIsInvalidErrorWithCause("number",
			fmt.Errorf("'%s' is not of the form YYYY-NNNNN", formatted))
	}

	return ComposeNumber(year, sequence)
}
