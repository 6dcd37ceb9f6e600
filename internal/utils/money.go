package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RoundWhole rounds an amount to whole currency units. Fixed discounts
// settle in whole units.
func RoundWhole(amount float64) float64 {
	return math.Round(amount)
}

// RoundCents rounds an amount to two decimal places. Percentage discounts
// keep cent precision until display.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// ClampNonNegative floors an amount at zero. Ledger amounts never go negative.
func ClampNonNegative(amount float64) float64 {
	if amount < 0 {
		return 0
	}
	return amount
}

// ValidateISODate checks a yyyy-mm-dd formatted date string
func ValidateISODate(dateStr string) error {
	parts := strings.Split(dateStr, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return fmt.Errorf("invalid date format, expected yyyy-mm-dd")
	}

	if _, err := strconv.Atoi(parts[0]); err != nil {
		return fmt.Errorf("invalid year: %v", err)
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("invalid month: %v", err)
	}

	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return fmt.Errorf("invalid day: %v", err)
	}

	if month < 1 || month > 12 {
		return fmt.Errorf("month must be between 1 and 12")
	}

	if day < 1 || day > 31 {
		return fmt.Errorf("day must be between 1 and 31")
	}

	return nil
}

// WithinWindow reports whether day falls inside [start, end], both ends
// included. Dates are yyyy-mm-dd strings, so plain string comparison orders
// them correctly at calendar-day granularity.
func WithinWindow(day, start, end string) bool {
	return start <= day && day <= end
}
