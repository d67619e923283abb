package santa

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoadPeople(t *testing.T) {
	t.Parallel()

	p := writeFile(t, "friends.json", `[
		{"name": " Alice ", "bio": "Loves board games."},
		{"name": "Bob", "bio": "Busy with exams.", "emotion": "happy"}
	]`)
	people, err := LoadPeople(p)
	if err != nil {
		t.Fatalf("LoadPeople: %v", err)
	}
	if len(people) != 2 {
		t.Fatalf("len=%d", len(people))
	}
	if people[0].Name != "Alice" {
		t.Fatalf("Name=%q", people[0].Name)
	}
	if people[1].Emotion != "" {
		t.Fatalf("emotion should be cleared until classification, got %q", people[1].Emotion)
	}
	if got := people[0].ProfileText(); got != "Alice: Loves board games." {
		t.Fatalf("ProfileText=%q", got)
	}
}

func TestLoadPeople_RejectsDuplicatesAndBlankNames(t *testing.T) {
	t.Parallel()

	dup := writeFile(t, "dup.json", `[{"name":"A","bio":""},{"name":"A","bio":""}]`)
	if _, err := LoadPeople(dup); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("err=%v, want ErrDuplicateName", err)
	}
	blank := writeFile(t, "blank.json", `[{"name":"  ","bio":"x"}]`)
	if _, err := LoadPeople(blank); err == nil {
		t.Fatalf("expected error for blank name")
	}
	bad := writeFile(t, "bad.json", `{"name":"A"}`)
	if _, err := LoadPeople(bad); err == nil {
		t.Fatalf("expected error for non-array input")
	}
	if _, err := LoadPeople(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseEmotion(t *testing.T) {
	t.Parallel()

	if got := ParseEmotion(" Lonely "); got != Lonely {
		t.Fatalf("got=%s", got)
	}
	if got := ParseEmotion("grumpy"); got != Neutral {
		t.Fatalf("got=%s", got)
	}
	if Emotion("grumpy").Known() {
		t.Fatalf("grumpy should not be known")
	}
}
