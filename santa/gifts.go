package santa

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// GiftCatalog maps an emotion label to candidate gifts. Labels without an entry use
// Fallback.
type GiftCatalog struct {
	Gifts    map[Emotion][]string `yaml:"gifts"`
	Fallback []string             `yaml:"fallback"`
}

func DefaultGiftCatalog() GiftCatalog {
	neutral := []string{
		"A nice pen set 🖊️",
		"A chocolate bar 🍫",
		"A greeting card ✉️",
	}
	return GiftCatalog{
		Gifts: map[Emotion][]string{
			Happy: {
				"A fun board game 🎲",
				"A personalised keychain 🔑",
				"A cute desk plant 🌱",
				"A box of chocolates 🍫",
				"A handwritten appreciation note ✍️",
			},
			Stressed: {
				"A stress relief ball set 🧘‍♂️",
				"A scented candle 🕯️",
				"A self-care kit 🛁",
				"A warm cozy blanket 🧣",
				"A calming herbal tea pack 🍵",
			},
			Lonely: {
				"A friendship bracelet 🤝",
				"A cute plush toy 🧸",
				"A small photo frame with your memories 🖼️",
				"A handwritten letter 💌",
				"A little snack hamper 🍪",
			},
			Excited: {
				"A colourful notebook 📓",
				"A surprise mystery box 🎁",
				"A box of energy snacks ⚡",
				"A quirky desk toy 🧩",
				"A celebration cupcake 🧁",
			},
			Neutral: append([]string(nil), neutral...),
		},
		Fallback: append([]string(nil), neutral...),
	}
}

// Options returns the list a gift is drawn from for emotion.
func (c GiftCatalog) Options(emotion Emotion) []string {
	if gifts, ok := c.Gifts[emotion]; ok && len(gifts) > 0 {
		return gifts
	}
	return c.Fallback
}

// Suggest picks a gift for a receiver. Only the emotion affects the choice.
func (c GiftCatalog) Suggest(rng *rand.Rand, receiver string, emotion Emotion) string {
	opts := c.Options(emotion)
	if len(opts) == 0 {
		return ""
	}
	if rng == nil {
		return opts[rand.IntN(len(opts))]
	}
	return opts[rng.IntN(len(opts))]
}

func (c GiftCatalog) Validate() error {
	if len(c.Fallback) == 0 {
		return errors.New("gift catalog: fallback list is empty")
	}
	for e, gifts := range c.Gifts {
		if len(gifts) == 0 {
			return fmt.Errorf("gift catalog: %q has no gifts", e)
		}
	}
	return nil
}

// LoadGiftCatalog reads a YAML catalog. Labels missing from the file keep their
// default lists; a missing fallback keeps the default fallback.
func LoadGiftCatalog(path string) (GiftCatalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return GiftCatalog{}, fmt.Errorf("read %s: %w", path, err)
	}
	var override GiftCatalog
	if err := yaml.Unmarshal(b, &override); err != nil {
		return GiftCatalog{}, fmt.Errorf("unmarshal %s: %w", path, err)
	}

	cat := DefaultGiftCatalog()
	for label, gifts := range override.Gifts {
		e := ParseEmotion(string(label))
		if !strings.EqualFold(strings.TrimSpace(string(label)), string(e)) {
			return GiftCatalog{}, fmt.Errorf("%s: unknown emotion label %q", path, label)
		}
		cat.Gifts[e] = gifts
	}
	if override.Fallback != nil {
		cat.Fallback = override.Fallback
	}
	if err := cat.Validate(); err != nil {
		return GiftCatalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}
