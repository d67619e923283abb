package profilestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/theimaginaryfoundation/santa-bot/santa"
)

var (
	ErrNotCognified = errors.New("profile store: search before cognify")
	ErrEmptyProfile = errors.New("profile store: empty profile text")
)

// Engine turns ingested documents into answers.
type Engine interface {
	// Consolidate builds the searchable digest from every ingested document.
	Consolidate(ctx context.Context, docs []string) (string, error)
	// Complete answers query using the digest and the raw documents.
	Complete(ctx context.Context, query string, digest string, docs []string) (santa.Response, error)
}

// Session is one run's view of the profile store.
type Session struct {
	id        string
	docs      Documents
	engine    Engine
	cognified bool
}

// NewSession returns a session over docs and engine. An empty id gets a random UUID.
func NewSession(id string, docs Documents, engine Engine) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	return &Session{id: id, docs: docs, engine: engine}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Reset(ctx context.Context) error {
	s.cognified = false
	return s.docs.Clear(ctx)
}

func (s *Session) Add(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyProfile
	}
	return s.docs.Append(ctx, text)
}

func (s *Session) Cognify(ctx context.Context) error {
	docs, err := s.docs.All(ctx)
	if err != nil {
		return err
	}
	digest, err := s.engine.Consolidate(ctx, docs)
	if err != nil {
		return fmt.Errorf("consolidate %d documents: %w", len(docs), err)
	}
	if err := s.docs.SetDigest(ctx, digest); err != nil {
		return err
	}
	s.cognified = true
	return nil
}

func (s *Session) Search(ctx context.Context, query string, mode santa.QueryMode) (santa.Response, error) {
	if !s.cognified {
		return santa.Response{}, ErrNotCognified
	}
	docs, err := s.docs.All(ctx)
	if err != nil {
		return santa.Response{}, err
	}

	switch mode {
	case santa.QueryChunks:
		found := documentsAbout(query, docs)
		if len(found) == 0 {
			found = docs
		}
		return santa.StringsResponse(found...), nil
	case santa.QueryCompletion, "":
		digest, err := s.docs.Digest(ctx)
		if err != nil {
			return santa.Response{}, err
		}
		return s.engine.Complete(ctx, query, digest, docs)
	default:
		return santa.Response{}, fmt.Errorf("profile store: unsupported query mode %q", mode)
	}
}

var _ santa.ProfileStore = (*Session)(nil)
