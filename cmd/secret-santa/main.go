package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/redis/go-redis/v9"

	"github.com/theimaginaryfoundation/santa-bot/santa"
	"github.com/theimaginaryfoundation/santa-bot/santa/fileutils"
	"github.com/theimaginaryfoundation/santa-bot/santa/metrics"
	"github.com/theimaginaryfoundation/santa-bot/santa/profilestore"
	"github.com/theimaginaryfoundation/santa-bot/santa/provider"
)

// errUsage marks failures caused by bad input rather than by the run itself.
var errUsage = errors.New("usage")

func main() {
	_ = godotenv.Load()

	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	cfg = cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, newLogger(os.Stderr, cfg.Verbose)); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(ctx context.Context, cfg Config, stdout io.Writer, log *slog.Logger) error {
	people, err := santa.LoadPeople(cfg.InPath)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if len(people) < 2 {
		return fmt.Errorf("%w: %s has %d participant(s); Secret Santa needs at least 2", errUsage, cfg.InPath, len(people))
	}

	gifts := santa.DefaultGiftCatalog()
	if cfg.GiftsPath != "" {
		gifts, err = santa.LoadGiftCatalog(cfg.GiftsPath)
		if err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}
	}

	if cfg.OutPath != "" && !cfg.Overwrite && fileutils.FileExists(cfg.OutPath) {
		return fmt.Errorf("%w: %s already exists (pass -overwrite)", errUsage, cfg.OutPath)
	}

	store, closeStore, err := buildStore(ctx, cfg, uuid.NewString())
	if err != nil {
		return err
	}
	defer closeStore()
	log = log.With("session", store.ID())

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}
	var m *metrics.Run
	if cfg.MetricsPath != "" {
		m = metrics.New()
	}

	report, err := santa.Run(ctx, store, people, santa.RunOptions{
		Gifts:   gifts,
		Rand:    rng,
		Logger:  log,
		Metrics: m,
	})
	if err != nil {
		return err
	}
	report.SessionID = store.ID()

	if err := report.WriteText(stdout); err != nil {
		return err
	}
	if cfg.OutPath != "" {
		if err := fileutils.WriteJSONFileAtomic(cfg.OutPath, report, cfg.Pretty, cfg.Overwrite); err != nil {
			return err
		}
		log.Info("report written", "path", cfg.OutPath)
	}
	if err := m.WriteTextfile(cfg.MetricsPath); err != nil {
		return err
	}
	return nil
}

// buildStore wires the documents backend and answer engine for one session.
func buildStore(ctx context.Context, cfg Config, sessionID string) (*profilestore.Session, func(), error) {
	var engine profilestore.Engine
	switch cfg.Engine {
	case engineLocal:
		engine = profilestore.LocalEngine{}
	default:
		if cfg.APIKey == "" {
			return nil, nil, fmt.Errorf("%w: missing OPENAI_API_KEY (or pass -api-key, or -engine local)", errUsage)
		}
		client := openai.NewClient(option.WithAPIKey(cfg.APIKey))
		engine = profilestore.OpenAIEngine{
			Client: &client,
			Model:  cfg.Model,
			Retry:  provider.DefaultRetryPolicy(),
		}
	}

	if cfg.RedisAddr == "" {
		return profilestore.NewSession(sessionID, profilestore.NewMemory(), engine), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
	}
	docs := profilestore.NewRedis(client, sessionID, profilestore.RedisConfig{TTL: cfg.RedisTTL})
	return profilestore.NewSession(sessionID, docs, engine), func() { _ = client.Close() }, nil
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.InPath, "in", cfg.InPath, "Path to the participants JSON file ([{\"name\":...,\"bio\":...}])")
	fs.StringVar(&cfg.OutPath, "out", "", "Optional path to write the final report as JSON")
	fs.BoolVar(&cfg.Pretty, "pretty", false, "Pretty-print the JSON report")
	fs.BoolVar(&cfg.Overwrite, "overwrite", false, "Overwrite an existing -out file")
	fs.StringVar(&cfg.Engine, "engine", cfg.Engine, "Profile store engine: openai or local (offline, answers from the bio itself)")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "OpenAI model to use (e.g. gpt-5-mini)")
	fs.StringVar(&cfg.APIKey, "api-key", "", "OpenAI API key (overrides OPENAI_API_KEY env var)")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", "", "Optional Redis address for profile documents (default: in memory; env SANTA_REDIS_ADDR)")
	fs.DurationVar(&cfg.RedisTTL, "redis-ttl", cfg.RedisTTL, "Expiry for session keys in Redis (0 = never)")
	fs.StringVar(&cfg.GiftsPath, "gifts", "", "Optional YAML gift catalog overriding the built-in lists")
	fs.Uint64Var(&cfg.Seed, "seed", 0, "Random seed for matching and gift picks (0 = random)")
	fs.StringVar(&cfg.MetricsPath, "metrics-file", "", "Optional path to write Prometheus metrics in text format")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Log raw and normalized profile store answers")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  %s [flags]\n\nFlags:\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "\nExample:")
		fmt.Fprintln(fs.Output(), "  go run ./cmd/secret-santa -in data/friends.json -engine local -seed 42")
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.InPath = filepath.Clean(cfg.InPath)
	if cfg.OutPath != "" {
		cfg.OutPath = filepath.Clean(cfg.OutPath)
	}
	if cfg.GiftsPath != "" {
		cfg.GiftsPath = filepath.Clean(cfg.GiftsPath)
	}
	if cfg.MetricsPath != "" {
		cfg.MetricsPath = filepath.Clean(cfg.MetricsPath)
	}
	return cfg, nil
}
