package leadscan

import (
	"context"
	"time"
)

// HistoryLimit is the number of results kept per user.
const HistoryLimit = 5

// Result represents the outcome of scanning a single URL.
type Result struct {
	ID           string    `json:"id,omitempty"`
	UserID       string    `json:"userId,omitempty"`
	URL          string    `json:"url"`
	Emails       []string  `json:"emails"`
	PhoneNumbers []string  `json:"phoneNumbers"`
	Fingerprint  string    `json:"fingerprint,omitempty"`
	ScannedAt    time.Time `json:"scannedAt"`
}

// Validate returns an error if the result contains invalid fields.
func (r *Result) Validate() error {
	if r.UserID == "" {
		return Errorf(EINVALID, "result user ID required")
	}
	if r.URL == "" {
		return Errorf(EINVALID, "result URL required")
	}
	return nil
}

// Scanner extracts contacts from the page at a user-supplied URL.
type Scanner interface {
	// Scan normalizes rawURL, fetches the page and extracts its contacts.
	// Returns *RateLimitError when called again too soon and *FetchError
	// when the page cannot be retrieved.
	Scan(ctx context.Context, rawURL string) (*Result, error)
}

// ResultService represents a service for managing saved scan results.
type ResultService interface {
	// CreateResult saves a result and trims the user's history to HistoryLimit.
	CreateResult(ctx context.Context, result *Result) error

	// FindResultByID retrieves a result by ID.
	// Returns ENOTFOUND if result does not exist.
	FindResultByID(ctx context.Context, id string) (*Result, error)

	// FindResults retrieves results matching the filter, newest first.
	FindResults(ctx context.Context, filter ResultFilter) ([]*Result, error)

	// DeleteResult permanently removes a result.
	// Returns ENOTFOUND if result does not exist.
	DeleteResult(ctx context.Context, id string) error
}

// ResultFilter represents a filter for FindResults.
type ResultFilter struct {
	ID     *string `json:"id"`
	UserID *string `json:"userId"`
	URL    *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
