package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/console"
	"github.com/robalobadob/wordle/apps/go-solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	wcfg := words.ConfigFromEnv()
	flag.IntVar(&wcfg.Length, "length", wcfg.Length, "word length")
	flag.StringVar(&wcfg.DictionaryPath, "dict", wcfg.DictionaryPath, "dictionary file, one word per line")
	flag.StringVar(&wcfg.AlphabetPath, "alphabet", wcfg.AlphabetPath, "alphabet file")
	flag.StringVar(&wcfg.DatabasePath, "db", wcfg.DatabasePath, "SQLite database holding the dictionary")
	flag.StringVar(&wcfg.DatabaseTable, "table", wcfg.DatabaseTable, "dictionary table in -db")

	ccfg := console.Config{
		MaxGuesses: envInt("MAX_GUESSES", 6),
		OutputPath: getEnv("OUTPUT_FILE", "wordle_possible_words.txt"),
		ShowLimit:  envInt("SHOW_LIMIT", 20),
	}
	flag.IntVar(&ccfg.MaxGuesses, "max-guesses", ccfg.MaxGuesses, "guess limit, 0 for none")
	flag.StringVar(&ccfg.OutputPath, "out", ccfg.OutputPath, "file receiving the candidates after each guess, empty to disable")
	flag.IntVar(&ccfg.ShowLimit, "show", ccfg.ShowLimit, "print candidates when fewer than this remain")
	flag.StringVar(&ccfg.Answer, "answer", "", "score guesses against this answer instead of asking for feedback")
	flag.BoolVar(&ccfg.Color, "color", true, "colour the echoed guess")

	serve := flag.Bool("serve", false, "run the HTTP API instead of the interactive prompt")
	port := flag.String("port", getEnv("PORT", "5175"), "HTTP port for -serve")
	flag.Parse()
	ccfg.Answer = strings.ToLower(strings.TrimSpace(ccfg.Answer))

	if !*serve {
		// Keep log lines readable and off the prompt stream.
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	lists, err := words.Load(ctx, wcfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}

	if *serve {
		srv := httpserver.New(store.NewMemoryStore(), lists, httpserver.ConfigFromEnv())
		go srv.SweepEvery(ctx, time.Minute)
		log.Info().Str("port", *port).Msg("starting go-solver")
		if err := srv.Start(":" + *port); err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
		return
	}

	sess, err := lists.NewSession()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start session")
	}
	if err := console.New(sess, os.Stdin, os.Stdout, ccfg).Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("session failed")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
