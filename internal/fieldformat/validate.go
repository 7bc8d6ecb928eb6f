// internal/fieldformat/validate.go
package fieldformat

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var dateMaskRe = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// ValidateDate checks an MM/DD/YYYY string against the calendar. The day is
// verified with a round trip through time.Date so month lengths and leap
// years come from the standard library, not a lookup table. Returns an empty
// string when valid.
func ValidateDate(date string) string {
	return validateDate(date, time.Now())
}

func validateDate(date string, now time.Time) string {
	if !dateMaskRe.MatchString(date) {
		return "Date must be in MM/DD/YYYY format"
	}

	month, _ := strconv.Atoi(date[0:2])
	day, _ := strconv.Atoi(date[3:5])
	year, _ := strconv.Atoi(date[6:10])

	if year < 1900 || year > now.Year() {
		return fmt.Sprintf("Year must be between 1900 and %d", now.Year())
	}
	if month < 1 || month > 12 {
		return "Month must be between 01 and 12"
	}

	// time.Date normalizes overflow (02/30 becomes 03/01), so the parts must
	// read back unchanged for the day to be real.
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return "Day is not valid for that month"
	}
	return ""
}

// ValidateDOB applies ValidateDate and then requires the date to be on or
// before today minus 18 calendar years (exact calendar subtraction, not a
// day-count approximation).
func ValidateDOB(date string) string {
	return validateDOB(date, time.Now())
}

func validateDOB(date string, now time.Time) string {
	if msg := validateDate(date, now); msg != "" {
		return msg
	}

	month, _ := strconv.Atoi(date[0:2])
	day, _ := strconv.Atoi(date[3:5])
	year, _ := strconv.Atoi(date[6:10])

	dob := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	cutoff := time.Date(now.Year()-18, now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if dob.After(cutoff) {
		return "Must be at least 18 years old"
	}
	return ""
}

// ValidVehicleYear reports whether s is a 4-digit year in [1900, current year].
func ValidVehicleYear(s string) bool {
	return validVehicleYear(s, time.Now())
}

func validVehicleYear(s string, now time.Time) bool {
	if len(s) != 4 {
		return false
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return year >= 1900 && year <= now.Year()
}
