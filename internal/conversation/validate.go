package conversation

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Business rules for appointment slots.
const (
	maxAdvanceDays = 90
	openingHour    = 8
	closingHour    = 20
)

var phonePattern = regexp.MustCompile(`^[\d\s\-\+\(\)]{7,20}$`)

var (
	errDateFormat = errors.New("Invalid date format. Please use YYYY-MM-DD (e.g., 2026-12-25)")
	errDatePast   = errors.New("Date must be in the future")
	errDateTooFar = errors.New("Cannot book appointments more than 3 months in advance")
	errTimeFormat = errors.New("Invalid time format. Please use HH:MM (e.g., 14:30)")
	errTimeHours  = errors.New("Clinic hours are 08:00 to 20:00")
	errTimeGrain  = errors.New("Please select time on 30-minute intervals (e.g., 14:00 or 14:30)")
)

// ValidateDate checks a YYYY-MM-DD date against booking rules: not in the
// past and at most 90 days ahead, both boundaries inclusive.
func ValidateDate(s string) error {
	return validateDateAt(s, time.Now())
}

func validateDateAt(s string, now time.Time) error {
	parsed, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), now.Location())
	if err != nil {
		return errDateFormat
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if parsed.Before(today) {
		return errDatePast
	}
	if parsed.After(today.AddDate(0, 0, maxAdvanceDays)) {
		return errDateTooFar
	}
	return nil
}

// ValidateTime checks an HH:MM time against clinic hours [08:00, 20:00) and
// the 30-minute slot granularity.
func ValidateTime(s string) error {
	parsed, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return errTimeFormat
	}
	if h := parsed.Hour(); h < openingHour || h >= closingHour {
		return errTimeHours
	}
	if m := parsed.Minute(); m != 0 && m != 30 {
		return errTimeGrain
	}
	return nil
}

// ValidPhone reports whether s looks like a phone number: 7-20 characters of
// digits, spaces, and the symbols + - ( ).
func ValidPhone(s string) bool {
	return phonePattern.MatchString(strings.TrimSpace(s))
}
