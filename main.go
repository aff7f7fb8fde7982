package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordguesser/internal/config"
	"github.com/robalobadob/wordguesser/internal/daily"
	"github.com/robalobadob/wordguesser/internal/game"
	"github.com/robalobadob/wordguesser/internal/httpserver"
	"github.com/robalobadob/wordguesser/internal/player"
	"github.com/robalobadob/wordguesser/internal/store"
	"github.com/robalobadob/wordguesser/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	list, err := words.Load(cfg.WordsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	log.Info().Int("words", list.Len()).Msg("word list loaded")

	games, players, closeStore := openStore(cfg)
	defer closeStore()

	engine := game.NewEngine(games, list)
	srv := httpserver.New(engine, players, daily.NewSource(list, cfg.DailySalt), httpserver.Options{
		ClientOrigin:   cfg.ClientOrigin,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		RequestTimeout: cfg.RequestTimeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("port", cfg.Port).Str("store", cfg.Store).Msg("starting wordguesser")
	if err := srv.Start(ctx, cfg.Addr()); err != nil {
		log.Error().Err(err).Msg("server exited")
	}
}

// openStore returns the configured backend for games and players.
func openStore(cfg config.Config) (game.Store, player.Store, func()) {
	if cfg.Store == config.StoreSQLite {
		db, err := store.OpenSQLite(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
		}
		return db, db, func() {
			if err := db.Close(); err != nil {
				log.Warn().Err(err).Msg("close database")
			}
		}
	}
	mem := store.NewMemory()
	return mem, mem, func() {}
}
