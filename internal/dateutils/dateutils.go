// Package dateutils provides common date and time operations used throughout
// the application: parsing, calendar boundaries, and period resolution for
// analytics queries.
package dateutils

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Use a package-level logger so period-resolution fallbacks are visible
var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Common date format constants used throughout the application
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutUS       = "01/02/2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
)

// CommonFormats is a list of standard formats to try when parsing dates
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutEuropean,
	DateLayoutUS,
	DateLayoutFull,
	"02-01-2006",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate attempts to parse a date string using multiple common formats.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// StartOfDay truncates a time to midnight in its location.
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// StartOfWeek returns the Monday of the week containing the given date.
func StartOfWeek(date time.Time) time.Time {
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week that started the previous Monday
	}
	return StartOfDay(date).AddDate(0, 0, -(weekday - 1))
}

// EndOfWeek returns the Sunday of the week containing the given date.
func EndOfWeek(date time.Time) time.Time {
	return StartOfWeek(date).AddDate(0, 0, 6)
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns the last day of the month for a given date
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}

// StartOfYear returns January 1st of the date's year.
func StartOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, date.Location())
}

// EndOfYear returns December 31st of the date's year.
func EndOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), time.December, 31, 0, 0, 0, 0, date.Location())
}

// MonthKey renders the calendar month of a date as "YYYY-MM".
func MonthKey(date time.Time) string {
	return date.Format("2006-01")
}
