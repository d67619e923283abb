package santa

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/theimaginaryfoundation/santa-bot/santa/metrics"
)

// RunOptions configures a single matching run. Zero values are usable.
type RunOptions struct {
	Gifts   GiftCatalog
	Rand    *rand.Rand
	Logger  *slog.Logger
	Metrics *metrics.Run
}

// Run ingests every biography into store, classifies each participant, matches givers
// to receivers and suggests a gift per receiver. people is annotated in place with the
// detected emotions. Everything happens sequentially in input order.
func Run(ctx context.Context, store ProfileStore, people []Person, opts RunOptions) (Report, error) {
	if len(people) < 2 {
		return Report{}, fmt.Errorf("run: %w (got %d)", ErrTooFewParticipants, len(people))
	}
	if err := ValidatePeople(people); err != nil {
		return Report{}, fmt.Errorf("run: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	gifts := opts.Gifts
	if gifts.Gifts == nil && gifts.Fallback == nil {
		gifts = DefaultGiftCatalog()
	}

	if err := store.Reset(ctx); err != nil {
		return Report{}, fmt.Errorf("reset profile store: %w", err)
	}

	log.Info("adding profiles", "count", len(people))
	for _, p := range people {
		if err := store.Add(ctx, p.ProfileText()); err != nil {
			return Report{}, fmt.Errorf("add profile %s: %w", p.Name, err)
		}
	}

	log.Info("cognifying profiles")
	if err := store.Cognify(ctx); err != nil {
		return Report{}, fmt.Errorf("cognify: %w", err)
	}

	log.Info("detecting emotions")
	Classifier{Store: store, Logger: log, Metrics: opts.Metrics}.ClassifyAll(ctx, people)

	log.Info("matching friends")
	assignment, err := Match(people, rng)
	if err != nil {
		return Report{}, fmt.Errorf("match: %w", err)
	}

	emotions := make(map[string]Emotion, len(people))
	for _, p := range people {
		emotions[p.Name] = p.Emotion
	}

	report := Report{Participants: len(people), Results: make([]Result, 0, len(assignment))}
	for _, pair := range assignment {
		opts.Metrics.RecordAssignment(pair.Preferred)
		emo := emotions[pair.Receiver]
		report.Results = append(report.Results, Result{
			Giver:           pair.Giver,
			Receiver:        pair.Receiver,
			ReceiverEmotion: emo,
			Gift:            gifts.Suggest(rng, pair.Receiver, emo),
			Preferred:       pair.Preferred,
		})
	}
	return report, nil
}
