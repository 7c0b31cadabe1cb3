package venue

import (
	"fmt"
	"strconv"
	"strings"

	"boxoffice/internal/domain"
)

// layout describes one section's slice of the global seat numbering. The main
// floor spans three layouts under one prefix, the south balcony two; a seat's
// array offset is its global number minus one minus the section base.
type layout struct {
	section  domain.Section
	prefix   string
	capacity int
	base     int
}

var layouts = []layout{
	{domain.MainFloorLeft, "m", 50, 0},
	{domain.MainFloorRight, "m", 50, 50},
	{domain.MainFloorCenter, "m", 50, 100},
	{domain.SouthBalconyUpper, "sb", 25, 0},
	{domain.SouthBalconyLower, "sb", 25, 25},
	{domain.WestBalcony, "wb", 100, 0},
	{domain.EastBalcony, "eb", 100, 0},
}

// Layout reports the prefix, capacity, and numbering base of a section.
func Layout(section domain.Section) (prefix string, capacity, base int) {
	for _, l := range layouts {
		if l.section == section {
			return l.prefix, l.capacity, l.base
		}
	}
	return "", 0, 0
}

// ResolveSeat parses a human seat code such as "m101" or "SB7" into its
// section and zero-based offset within that section's block. The alphabetic
// prefix and the numeric part are extracted independently, so "m-101" resolves
// the same as "m101". Comparison is case-insensitive. Any unknown prefix,
// number outside the section ranges, or missing number fails with
// ErrSeatDoesNotExist.
func ResolveSeat(code string) (domain.Section, int, error) {
	var prefix, digits strings.Builder
	for _, r := range code {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			prefix.WriteRune(r)
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		}
	}

	if digits.Len() == 0 {
		return 0, 0, fmt.Errorf("seat %q: %w", code, ErrSeatDoesNotExist)
	}

	number, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, 0, fmt.Errorf("seat %q: %w", code, ErrSeatDoesNotExist)
	}

	loc := strings.ToLower(prefix.String())
	for _, l := range layouts {
		if l.prefix != loc {
			continue
		}
		if number > l.base && number <= l.base+l.capacity {
			return l.section, number - 1 - l.base, nil
		}
	}

	return 0, 0, fmt.Errorf("seat %q: %w", code, ErrSeatDoesNotExist)
}
