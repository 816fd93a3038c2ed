package utils

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"golang.org/x/net/publicsuffix"
)

const SplitChars string = "/,;"

const DateFormat string = "2006-01-02"

func CleanString(s string) string {
	c := strings.TrimSpace(s)

	if len(c) < 1 {
		return c
	}

	re := regexp.MustCompile(`([\s])+`)
	c = re.ReplaceAllString(c, `$1`)

	return c
}

func ToStringPtr(s string) *string {
	s = strings.TrimSpace(s)

	if len(s) < 1 {
		return nil
	}

	return &s
}

// ToIntPtr parses a free-form numeric field, returning nil for blank or
// malformed values.
func ToIntPtr(s string) *int {
	s = strings.TrimSpace(s)

	if len(s) < 1 {
		return nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}

	return &n
}

// ToDatePtr parses an ISO-8601 calendar date, returning nil for blank or
// malformed values.
func ToDatePtr(s string) *time.Time {
	s = strings.TrimSpace(s)

	if len(s) < 1 {
		return nil
	}

	d, err := time.Parse(DateFormat, s)
	if err != nil {
		return nil
	}

	return &d
}

func IsValidEmail(e string) bool {
	e = strings.TrimSpace(e)

	if len(e) < 1 {
		return false
	}

	if _, err := mail.ParseAddress(e); err != nil {
		return false
	}

	return true
}

// https://stackoverflow.com/a/54426140
func SplitAny(s string, seps string) []string {
	s = strings.TrimSpace(s)

	splitter := func(r rune) bool {
		return strings.ContainsRune(seps, r)
	}

	return strings.FieldsFunc(s, splitter)
}

func RemoveDuplicated[T comparable](sliceList []T) []T {
	allKeys := make(map[T]bool, len(sliceList))
	list := make([]T, 0)

	for _, item := range sliceList {
		if _, value := allKeys[item]; !value {
			allKeys[item] = true
			list = append(list, item)
		}
	}

	return list
}

func CleanStringList(s []string) []string {
	if len(s) < 1 {
		return []string{}
	}

	for k, v := range s {
		s[k] = CleanString(v)
	}

	s = RemoveDuplicated(s)

	return slices.DeleteFunc(s, func(e string) bool {
		return len(e) < 1
	})
}

func GetDomainHostname(d string) (string, error) {
	d = strings.TrimSpace(d)

	if len(d) < 1 {
		return "", errors.New("Invalid domain.")
	}

	if !strings.HasPrefix(d, "http") {
		d = "https://" + d
	}

	u, err := url.Parse(d)
	if err != nil {
		sentry.CaptureException(err)
		return "", fmt.Errorf("Could not parse URL: %w", err)
	}

	if len(u.Scheme) < 1 || len(u.Host) < 1 || len(u.Hostname()) < 1 {
		return "", fmt.Errorf("Invalid URL: %s", d)
	}

	return u.Hostname(), nil
}

func GetApexDomain(d string) (string, error) {
	h, err := GetDomainHostname(d)
	if err != nil {
		return "", err
	}

	return publicsuffix.EffectiveTLDPlusOne(h)
}
