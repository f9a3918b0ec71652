// internal/words/words.go
//
// Provides the dictionary and alphabet a solver session is seeded from.
//
// Responsibilities:
//   - Load the dictionary from a SQLite table, a plain file, or the embedded default.
//   - Load the alphabet from a file or the embedded default.
//   - Normalize words (trim, lowercase, drop comments and duplicates) and keep
//     only words of the configured length.
//
// Sources (Load):
//   1. WORDS_DB set          → dictionary from table WORDS_DB_TABLE (default "words").
//   2. WORDS_DICTIONARY_FILE → dictionary from that file, one word per line.
//   3. neither               → embedded assets/dictionary.txt.
//   WORDS_ALPHABET_FILE      → alphabet from that file, else assets/alphabet.txt.
//
// The dictionary and alphabet are read concurrently.

package words

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// DefaultLength is the classic Wordle word length.
const DefaultLength = 5

// ErrEmptyDictionary is returned when no word of the requested length was found.
var ErrEmptyDictionary = errors.New("words: dictionary has no words of the requested length")

// Config selects the word sources.
type Config struct {
	Length         int
	DictionaryPath string
	AlphabetPath   string
	DatabasePath   string
	DatabaseTable  string
}

// ConfigFromEnv reads WORD_LENGTH, WORDS_DICTIONARY_FILE, WORDS_ALPHABET_FILE,
// WORDS_DB and WORDS_DB_TABLE.
func ConfigFromEnv() Config {
	return Config{
		Length:         envInt("WORD_LENGTH", DefaultLength),
		DictionaryPath: os.Getenv("WORDS_DICTIONARY_FILE"),
		AlphabetPath:   os.Getenv("WORDS_ALPHABET_FILE"),
		DatabasePath:   os.Getenv("WORDS_DB"),
		DatabaseTable:  getEnv("WORDS_DB_TABLE", "words"),
	}
}

// Lists is a loaded dictionary plus its alphabet.
type Lists struct {
	Length     int
	Dictionary []string
	Alphabet   solver.Alphabet
}

// Stats returns counts of loaded data: (words, letters).
func (l *Lists) Stats() (wordCount int, letterCount int) {
	return len(l.Dictionary), l.Alphabet.Len()
}

// NewSession seeds a solver session from the lists.
func (l *Lists) NewSession() (*solver.Session, error) {
	return solver.NewSession(l.Length, l.Alphabet, l.Dictionary)
}

// Load reads the configured dictionary and alphabet.
func Load(ctx context.Context, cfg Config) (*Lists, error) {
	if cfg.Length <= 0 {
		return nil, fmt.Errorf("words: invalid word length %d", cfg.Length)
	}
	lists := &Lists{Length: cfg.Length}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		dict, err := loadDictionary(ctx, cfg)
		if err != nil {
			return err
		}
		lists.Dictionary = dict
		return nil
	})
	g.Go(func() error {
		letters, err := loadAlphabet(cfg.AlphabetPath)
		if err != nil {
			return err
		}
		lists.Alphabet = solver.NewAlphabet(letters)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(lists.Dictionary) == 0 {
		return nil, fmt.Errorf("%w (%d)", ErrEmptyDictionary, cfg.Length)
	}
	if lists.Alphabet.Len() == 0 {
		return nil, errors.New("words: alphabet is empty")
	}
	log.Info().
		Int("words", len(lists.Dictionary)).
		Int("length", cfg.Length).
		Str("alphabet", lists.Alphabet.String()).
		Msg("word lists loaded")
	return lists, nil
}

func loadDictionary(ctx context.Context, cfg Config) ([]string, error) {
	switch {
	case cfg.DatabasePath != "":
		db, err := openDB(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return readWordTable(ctx, db, cfg.DatabaseTable, cfg.Length)

	case cfg.DictionaryPath != "":
		return readWordFile(cfg.DictionaryPath, cfg.Length)

	default:
		all, err := assets.DictionaryList()
		if err != nil {
			return nil, fmt.Errorf("embedded dictionary: %w", err)
		}
		return normalize(all, cfg.Length), nil
	}
}

func loadAlphabet(path string) (string, error) {
	if path == "" {
		return assets.AlphabetLetters()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read alphabet: %w", err)
	}
	return string(b), nil
}

// readWordFile loads one word per line from a file and keeps words of length n.
func readWordFile(path string, n int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()
	return ReadWords(f, n)
}

// ReadWords reads one word per line from r and returns the normalized words of length n.
func ReadWords(r io.Reader, n int) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan dictionary: %w", err)
	}
	return normalize(lines, n), nil
}

// normalize lowercases and trims words, dropping blanks, comments, duplicates
// and any word that is not exactly n letters. Order is kept.
func normalize(lines []string, n int) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		w := strings.ToLower(strings.TrimSpace(line))
		if w == "" || strings.HasPrefix(w, "#") || strings.ContainsFunc(w, isSpace) {
			continue
		}
		if utf8.RuneCountInString(w) != n {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' }

// getEnv returns the value of k or def if unset/empty.
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
		log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-numeric setting")
	}
	return def
}
