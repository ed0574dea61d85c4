// Package scan provides contact scanning orchestration.
// It coordinates throttling, URL normalization, fetching, optional HTML
// preprocessing and contact extraction.
package scan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/leadscan"
)

var _ leadscan.Scanner = (*Scanner)(nil)

// Scanner orchestrates a single contact scan.
type Scanner struct {
	Gate         leadscan.Throttle
	Fetcher      leadscan.Fetcher
	Preprocessor leadscan.Preprocessor

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Scan arms the gate, normalizes rawURL, fetches the page and extracts its
// contacts. The gate is armed before fetching, so a failed or cancelled
// fetch still consumes the window. Nothing is retried.
func (s *Scanner) Scan(ctx context.Context, rawURL string) (*leadscan.Result, error) {
	now := s.now()

	if s.Gate != nil {
		if err := s.Gate.Arm(now); err != nil {
			return nil, err
		}
	}

	target := leadscan.NormalizeURL(rawURL)

	body, err := s.Fetcher.Fetch(ctx, target)
	if err != nil {
		var fe *leadscan.FetchError
		if !errors.As(err, &fe) {
			err = &leadscan.FetchError{URL: target, Err: err}
		}
		return nil, err
	}

	if s.Preprocessor != nil {
		body, err = s.Preprocessor.Process(body)
		if err != nil {
			return nil, fmt.Errorf("preprocess %s: %w", target, err)
		}
	}

	contacts := leadscan.ExtractContacts(body)

	return &leadscan.Result{
		URL:          target,
		Emails:       contacts.Emails,
		PhoneNumbers: contacts.PhoneNumbers,
		ScannedAt:    now,
	}, nil
}

func (s *Scanner) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
