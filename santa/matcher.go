package santa

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var (
	ErrTooFewParticipants = errors.New("at least 2 participants are required")
	// ErrNoCandidates is returned when the only person left in the pool is the giver.
	// The matcher never backtracks, so some orderings end here.
	ErrNoCandidates = errors.New("no receiver left in pool for giver")
)

// Preferences maps a giver's emotion to the receiver emotions it is best matched with.
var Preferences = map[Emotion][]Emotion{
	Happy:    {Stressed, Lonely},
	Excited:  {Neutral},
	Stressed: {Happy},
	Lonely:   {Happy},
	Neutral:  {Happy, Excited},
}

// Pair is one giver to receiver assignment. Preferred is false when the preference
// table could not be satisfied and the pick came from the whole pool.
type Pair struct {
	Giver     string `json:"giver"`
	Receiver  string `json:"receiver"`
	Preferred bool   `json:"preferred"`
}

// Assignment lists pairs in giver order.
type Assignment []Pair

// Map returns giver -> receiver.
func (a Assignment) Map() map[string]string {
	m := make(map[string]string, len(a))
	for _, p := range a {
		m[p.Giver] = p.Receiver
	}
	return m
}

func prefers(giver, receiver Emotion) bool {
	for _, e := range Preferences[giver] {
		if e == receiver {
			return true
		}
	}
	return false
}

// Match assigns every person a receiver. Givers are processed in input order; each
// takes a random preferred receiver still in the pool, or any pool member other than
// themselves when no preferred one is left. Receivers are never reused.
func Match(people []Person, rng *rand.Rand) (Assignment, error) {
	if len(people) < 2 {
		return nil, ErrTooFewParticipants
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	pool := append([]Person(nil), people...)
	out := make(Assignment, 0, len(people))
	for _, giver := range people {
		var candidates []int
		for i, p := range pool {
			if p.Name != giver.Name && prefers(giver.Emotion, p.Emotion) {
				candidates = append(candidates, i)
			}
		}
		preferred := len(candidates) > 0
		if !preferred {
			for i, p := range pool {
				if p.Name != giver.Name {
					candidates = append(candidates, i)
				}
			}
		}
		if len(candidates) == 0 {
			return out, fmt.Errorf("%w: %s", ErrNoCandidates, giver.Name)
		}

		idx := candidates[rng.IntN(len(candidates))]
		out = append(out, Pair{Giver: giver.Name, Receiver: pool[idx].Name, Preferred: preferred})
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return out, nil
}
