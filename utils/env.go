package utils

import (
	"log/slog"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/getsentry/sentry-go"
)

const (
	minListLimit     int = 1
	defaultListLimit int = 1000
	maxListLimit     int = 10000
)

func IsDebug() bool {
	isDebug, err := strconv.ParseBool(os.Getenv("APP_DEBUG"))
	if err != nil {
		isDebug = false
	}

	return isDebug
}

func DefaultTimeZone() string {
	tz := os.Getenv("TZ")
	if len(tz) < 1 {
		tz = "America/Mexico_City"
	}

	return tz
}

func DefaultLocation() *time.Location {
	tz := DefaultTimeZone()

	loc, err := time.LoadLocation(tz)
	if err != nil {
		sentry.CaptureException(err)
		return time.Now().Location()
	}

	return loc
}

// ListLimit clamps the requested listing size, falling back to the
// LIST_LIMIT_DEFAULT environment variable and then to the built-in default.
func ListLimit(l string) int {
	requested := os.Getenv("LIST_LIMIT_DEFAULT")

	if len(l) > 0 {
		requested = l
	}

	limit, err := strconv.Atoi(requested)
	if err != nil {
		limit = defaultListLimit
	}

	if limit < minListLimit {
		limit = minListLimit
	}

	if limit > maxListLimit {
		limit = maxListLimit
	}

	return limit
}

// ReminderEmails lists the addresses that receive follow-up digests.
func ReminderEmails() []string {
	e := CleanStringList(SplitAny(os.Getenv("REMINDER_EMAILS"), SplitChars))

	list := []string{}

	for _, addr := range e {
		if !IsValidEmail(addr) {
			slog.Warn("Ignoring invalid reminder email address.")
			continue
		}

		list = append(list, addr)
	}

	return list
}

func EmailLang() string {
	l := os.Getenv("EMAIL_LANG")

	if len(l) < 1 {
		slog.Warn("Empty email language. Falling back to 'en'.")
		l = "en"
	}

	return l
}
