package leadscan

import "context"

// Fetcher retrieves the raw body of a page.
// Implementations may fetch directly or through a relay.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its body as text.
	// Non-success responses and transport failures are reported as *FetchError.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// Preprocessor transforms fetched HTML before contacts are extracted.
type Preprocessor interface {
	Process(html string) (string, error)
}
