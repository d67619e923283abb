package santa

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrDuplicateName = errors.New("duplicate participant name")

// Person is a participant. Emotion is empty until classification runs.
type Person struct {
	Name    string  `json:"name"`
	Bio     string  `json:"bio"`
	Emotion Emotion `json:"emotion,omitempty"`
}

// ProfileText is the document ingested into the profile store for p.
func (p Person) ProfileText() string {
	return fmt.Sprintf("%s: %s", p.Name, p.Bio)
}

// LoadPeople reads a JSON array of {name, bio} records.
func LoadPeople(path string) ([]Person, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var people []Person
	if err := json.Unmarshal(b, &people); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	for i := range people {
		people[i].Name = strings.TrimSpace(people[i].Name)
		people[i].Emotion = ""
	}
	if err := ValidatePeople(people); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return people, nil
}

// ValidatePeople checks that every participant has a unique, non-empty name.
func ValidatePeople(people []Person) error {
	seen := make(map[string]struct{}, len(people))
	for i, p := range people {
		if p.Name == "" {
			return fmt.Errorf("participant %d: missing name", i)
		}
		if _, ok := seen[p.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateName, p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}
