package santa

import "strings"

// Emotion is one label from a closed mood vocabulary.
type Emotion string

const (
	Happy    Emotion = "happy"
	Stressed Emotion = "stressed"
	Lonely   Emotion = "lonely"
	Excited  Emotion = "excited"
	Neutral  Emotion = "neutral"
)

// DefaultEmotion is what ambiguous or failed classifications resolve to.
const DefaultEmotion = Neutral

// Emotions lists every label in match order.
var Emotions = []Emotion{Happy, Stressed, Lonely, Excited, Neutral}

// Known reports whether e is a member of the vocabulary.
func (e Emotion) Known() bool {
	for _, k := range Emotions {
		if e == k {
			return true
		}
	}
	return false
}

func (e Emotion) String() string {
	return string(e)
}

// ParseEmotion resolves s to a label, falling back to DefaultEmotion.
func ParseEmotion(s string) Emotion {
	e := Emotion(strings.ToLower(strings.TrimSpace(s)))
	if e.Known() {
		return e
	}
	return DefaultEmotion
}
