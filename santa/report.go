package santa

import (
	"fmt"
	"io"
)

// Result is one line of the final report.
type Result struct {
	Giver           string  `json:"giver"`
	Receiver        string  `json:"receiver"`
	ReceiverEmotion Emotion `json:"receiver_emotion"`
	Gift            string  `json:"gift"`
	Preferred       bool    `json:"preferred"`
}

type Report struct {
	SessionID    string   `json:"session_id,omitempty"`
	Participants int      `json:"participants"`
	Results      []Result `json:"results"`
}

// WriteText renders the report for a terminal.
func (r Report) WriteText(w io.Writer) error {
	if _, err := fmt.Fprint(w, "\n🎄 FINAL SECRET SANTA RESULTS 🎄\n\n"); err != nil {
		return err
	}
	for _, res := range r.Results {
		if _, err := fmt.Fprintf(w, "%s ➝ %s (%s)\nGift Suggestion: %s\n\n", res.Giver, res.Receiver, res.ReceiverEmotion, res.Gift); err != nil {
			return err
		}
	}
	return nil
}
