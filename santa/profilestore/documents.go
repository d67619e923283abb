// Package profilestore implements santa.ProfileStore: a per-run session that keeps the
// ingested biographies in a Documents backend and answers questions through an Engine.
package profilestore

import (
	"context"
	"regexp"
	"strings"
	"sync"
)

// Documents persists the raw ingested texts and the digest built by Cognify.
type Documents interface {
	Clear(ctx context.Context) error
	Append(ctx context.Context, doc string) error
	All(ctx context.Context) ([]string, error)
	SetDigest(ctx context.Context, digest string) error
	Digest(ctx context.Context) (string, error)
}

// Memory keeps documents in process memory.
type Memory struct {
	mu     sync.Mutex
	docs   []string
	digest string
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = nil
	m.digest = ""
	return nil
}

func (m *Memory) Append(ctx context.Context, doc string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = append(m.docs, doc)
	return nil
}

func (m *Memory) All(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.docs...), nil
}

func (m *Memory) SetDigest(ctx context.Context, digest string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.digest = digest
	return nil
}

func (m *Memory) Digest(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.digest, nil
}

// splitDocument separates an ingested "Name: bio" text. Documents without a colon
// have no subject.
func splitDocument(doc string) (subject, body string) {
	name, rest, ok := strings.Cut(doc, ":")
	if !ok {
		return "", strings.TrimSpace(doc)
	}
	return strings.TrimSpace(name), strings.TrimSpace(rest)
}

// documentsAbout returns the documents whose subject is named in query.
func documentsAbout(query string, docs []string) []string {
	q := strings.ToLower(query)
	var out []string
	for _, d := range docs {
		subject, _ := splitDocument(d)
		if subject == "" {
			continue
		}
		if regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(subject)) + `\b`).MatchString(q) {
			out = append(out, d)
		}
	}
	return out
}
