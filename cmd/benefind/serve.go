package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/jonathan/benefind/internal/chat"
	"github.com/jonathan/benefind/internal/config"
	"github.com/jonathan/benefind/internal/eligibility"
	"github.com/jonathan/benefind/internal/geocode"
	"github.com/jonathan/benefind/internal/knowledge"
	"github.com/jonathan/benefind/internal/llm"
	"github.com/jonathan/benefind/internal/resources"
	"github.com/jonathan/benefind/internal/server"
	"github.com/jonathan/benefind/internal/speech"
)

var (
	servePort       int
	serveConfigFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes eligibility, resource search, chat, and voice endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigFile, "config", "", "Path to JSON config file")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadServeConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	deps, cleanup, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	srv, err := server.New(server.Config{Port: cfg.Port}, deps)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// loadServeConfig merges the config file, environment, and flags. Flags win
// over the file; the file wins over the environment.
func loadServeConfig() (*config.Config, error) {
	cfg := &config.Config{Port: servePort}

	if serveConfigFile != "" {
		fileCfg, err := config.LoadConfig(serveConfigFile)
		if err != nil {
			return nil, err
		}
		merged := cfg.MergeWithDefaults(*fileCfg)
		cfg = &merged
	}

	cfg.FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildDeps wires the service graph from configuration. Components whose
// credentials are missing stay nil; the server degrades those endpoints.
func buildDeps(ctx context.Context, cfg *config.Config) (server.Deps, func(), error) {
	cleanups := []func(){}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// Geocoding, with Redis-backed caching when configured
	geocodeOpts := []geocode.Option{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		cleanups = append(cleanups, func() { _ = rdb.Close() })
		geocodeOpts = append(geocodeOpts, geocode.WithCache(geocode.NewCache(rdb, 24*time.Hour)))
	}
	geocoder := geocode.NewClient(geocodeOpts...)

	// Resource search
	httpClient := &http.Client{Timeout: 20 * time.Second}
	pantries := resources.NewOverpassClient(httpClient)
	events := resources.NewEventbriteClient(cfg.EventbriteToken, httpClient)
	finder := resources.NewFinder(pantries, events, nil)

	mode := eligibility.Mode(cfg.EstimatorMode)

	// Policy knowledge store
	var store *knowledge.Store
	if cfg.DatabaseURL != "" {
		s, err := knowledge.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			cleanup()
			return server.Deps{}, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		store = s
		cleanups = append(cleanups, store.Close)
	} else {
		log.Println("DATABASE_URL not set; policy document answers are disabled")
	}

	// LLM-backed chat
	var responder server.ChatResponder
	if cfg.APIKey != "" {
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			cleanup()
			return server.Deps{}, nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		cleanups = append(cleanups, func() { _ = client.Close() })
		var docs chat.KnowledgeSearcher
		if store != nil {
			docs = store
		}
		responder = chat.NewResponder(chat.NewExtractor(client), geocoder, finder, docs, client, mode)
	} else {
		log.Println("GEMINI_API_KEY not set; chat endpoint is disabled")
	}

	// Voice surface
	var synthesizer server.Synthesizer
	if cfg.ElevenLabsKey != "" {
		s, err := speech.NewSynthesizer(cfg.ElevenLabsKey, speech.WithVoice(cfg.VoiceID))
		if err != nil {
			cleanup()
			return server.Deps{}, nil, err
		}
		synthesizer = s
	} else {
		log.Println("ELEVENLABS_API_KEY not set; voice audio is disabled")
	}

	var sessions *speech.SessionService
	if os.Getenv("SESSION_SECRET") != "" {
		sessionCfg, err := config.NewSessionConfig()
		if err != nil {
			cleanup()
			return server.Deps{}, nil, err
		}
		sessions, err = speech.NewSessionService(sessionCfg.Secret, time.Duration(sessionCfg.TTLMinutes)*time.Minute)
		if err != nil {
			cleanup()
			return server.Deps{}, nil, err
		}
	} else {
		log.Println("SESSION_SECRET not set; voice endpoints are disabled")
	}

	return server.Deps{
		Geocoder:    geocoder,
		Finder:      finder,
		Responder:   responder,
		Synthesizer: synthesizer,
		Sessions:    sessions,
		Mode:        mode,
	}, cleanup, nil
}
