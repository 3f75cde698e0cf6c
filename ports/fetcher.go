package ports

import "context"

// DocumentFetcher retrieves the raw text body of a remote document. The
// processing pipeline never performs network access itself; callers hand it
// the fetched text.
type DocumentFetcher interface {
	Fetch(ctx context.Context, location string) (string, error)
}
