package helpers

import "errors"

var (
	// ErrWebsiteRequired rejects a create or update that would leave the
	// website field blank. Nothing is stored and nothing is logged.
	ErrWebsiteRequired = errors.New("The website field is required.")

	// ErrWebsiteNotFound signals an operation against a nonexistent record.
	ErrWebsiteNotFound = errors.New("The requested website could not be found.")

	// ErrActionRequired rejects an activity entry without an action tag.
	ErrActionRequired = errors.New("The activity action tag is required.")
)
