package santa

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/theimaginaryfoundation/santa-bot/santa/metrics"
)

// synonymRules are checked after the bare label names, in this order.
var synonymRules = []struct {
	Emotion Emotion
	Terms   []string
}{
	{Stressed, []string{"anxious", "anxiety", "stress", "stressed", "overwhelmed"}},
	{Lonely, []string{"alone", "lonely", "isolate", "isolated", "miss my friends"}},
	{Excited, []string{"excited", "thrill", "pumped", "enthusiast"}},
	{Happy, []string{"happy", "joy", "great", "amazing", "celebrate", "celebrating"}},
}

type emotionPattern struct {
	emotion Emotion
	re      *regexp.Regexp
}

var emotionPatterns = compileEmotionPatterns()

func compileEmotionPatterns() []emotionPattern {
	var out []emotionPattern
	for _, e := range Emotions {
		out = append(out, emotionPattern{emotion: e, re: wordPattern(string(e))})
	}
	for _, rule := range synonymRules {
		out = append(out, emotionPattern{emotion: rule.Emotion, re: wordPattern(rule.Terms...)})
	}
	return out
}

func wordPattern(terms ...string) *regexp.Regexp {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// ClassifyText maps free text to exactly one emotion label. The first matching rule
// wins; text matching nothing resolves to DefaultEmotion.
func ClassifyText(text string) Emotion {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, p := range emotionPatterns {
		if p.re.MatchString(text) {
			return p.emotion
		}
	}
	return DefaultEmotion
}

// EmotionQuery is the question asked of the profile store for one participant.
func EmotionQuery(name string) string {
	return fmt.Sprintf("What is the emotional state or mood of %s?", name)
}

// Classifier infers a participant's emotion by querying a ProfileStore.
type Classifier struct {
	Store   ProfileStore
	Logger  *slog.Logger
	Metrics *metrics.Run
}

func (c Classifier) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// Classify issues one completion query for name. Store failures are logged and
// resolve to DefaultEmotion; Classify itself never fails.
func (c Classifier) Classify(ctx context.Context, name string) Emotion {
	log := c.logger().With("person", name)

	start := time.Now()
	resp, err := c.Store.Search(ctx, EmotionQuery(name), QueryCompletion)
	c.Metrics.RecordQuery(time.Since(start), err)
	if err != nil {
		log.Error("profile store search failed", "err", err)
		c.Metrics.RecordClassification(string(DefaultEmotion))
		return DefaultEmotion
	}
	log.Debug("raw search result", "kind", resp.Kind.String(), "response", fmt.Sprintf("%+v", resp))

	text := strings.ToLower(strings.TrimSpace(Normalize(resp)))
	log.Debug("normalized answer text", "text", text)

	e := ClassifyText(text)
	c.Metrics.RecordClassification(string(e))
	return e
}

// ClassifyAll annotates people in place, one query at a time in input order.
func (c Classifier) ClassifyAll(ctx context.Context, people []Person) {
	for i := range people {
		people[i].Emotion = c.Classify(ctx, people[i].Name)
		c.logger().Info("emotion detected", "person", people[i].Name, "emotion", string(people[i].Emotion))
	}
}
