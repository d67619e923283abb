package profilestore

import (
	"context"
	"strings"

	"github.com/theimaginaryfoundation/santa-bot/santa"
)

// LocalEngine answers without a model: the answer to a question about someone is
// their own biography. Useful offline and in tests.
type LocalEngine struct{}

func (LocalEngine) Consolidate(ctx context.Context, docs []string) (string, error) {
	return strings.Join(docs, "\n"), nil
}

func (LocalEngine) Complete(ctx context.Context, query string, digest string, docs []string) (santa.Response, error) {
	about := documentsAbout(query, docs)
	if len(about) == 0 {
		return santa.Response{}, nil
	}
	bodies := make([]string, 0, len(about))
	for _, d := range about {
		_, body := splitDocument(d)
		bodies = append(bodies, body)
	}
	return santa.StringsResponse(bodies...), nil
}
