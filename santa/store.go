package santa

import "context"

// QueryMode selects how a profile store answers a search.
type QueryMode string

const (
	// QueryCompletion asks for a generated answer grounded on the ingested profiles.
	QueryCompletion QueryMode = "completion"
	// QueryChunks returns the raw ingested documents relevant to the query.
	QueryChunks QueryMode = "chunks"
)

// ProfileStore ingests free-text biographies and answers natural-language questions
// about them. A run owns one store session; Reset clears anything left from earlier runs.
type ProfileStore interface {
	Reset(ctx context.Context) error
	Add(ctx context.Context, text string) error
	// Cognify indexes everything added so far. It runs once, after all Adds.
	Cognify(ctx context.Context) error
	Search(ctx context.Context, query string, mode QueryMode) (Response, error)
}
