// internal/console/console.go
//
// Interactive prompt/print loop around a solver session.
//
// Each turn:
//   1. Ask which word was guessed. An empty line or end of input ends the session.
//   2. Ask for its feedback, or score it against a known answer when one is configured.
//   3. Submit it. Validation failures are reported and the turn starts over.
//   4. Write the candidates to the output file and print a summary.
//
// The loop stops when every position is confirmed, when the guess limit is
// reached, or when the user ends the session.

package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/vyevs/ansi"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// ErrSessionEnded reports that the user ended the session (empty line or EOF).
// It is a normal outcome, not a failure.
var ErrSessionEnded = errors.New("session ended")

// Config controls the loop.
type Config struct {
	MaxGuesses int    // 0 means unlimited
	OutputPath string // candidates file; empty disables it
	ShowLimit  int    // print candidates when fewer than this remain
	Answer     string // when set, feedback is computed instead of asked for
	Color      bool   // colour the echoed guess
}

// Console runs one session against a reader and a writer.
type Console struct {
	cfg  Config
	sess *solver.Session
	in   *bufio.Scanner
	out  io.Writer
}

// New returns a console reading from in and printing to out.
func New(sess *solver.Session, in io.Reader, out io.Writer, cfg Config) *Console {
	return &Console{cfg: cfg, sess: sess, in: bufio.NewScanner(in), out: out}
}

// turn is one guess and its feedback as entered.
type turn struct {
	word  string
	marks []feedback.Mark
}

// Run drives the loop until the session ends. It returns nil on every normal
// ending and an error only for I/O failures.
func (c *Console) Run(ctx context.Context) error {
	c.printf("%d words added to possibilities\n", c.sess.Count())
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.cfg.MaxGuesses > 0 && c.sess.Guesses() >= c.cfg.MaxGuesses {
			c.printf("No guesses left after %d tries.\n", c.sess.Guesses())
			return nil
		}

		t, err := c.readTurn()
		if errors.Is(err, ErrSessionEnded) {
			c.printf("Exiting.\n")
			return nil
		}
		if err != nil {
			return err
		}

		res, err := c.sess.Guess(t.word, t.marks)
		if err != nil {
			if _, ok := solver.KindOf(err); ok {
				c.printf("Rejected: %v. Try again.\n", err)
				continue
			}
			return err
		}
		log.Debug().Str("guess", t.word).Str("feedback", feedback.String(t.marks)).Int("count", res.Count).Msg("turn")

		c.echo(t)
		if err := c.report(res); err != nil {
			return err
		}
		if res.Solved {
			c.printf("Congratulations on finishing your %d letter Wordle! Exiting.\n", c.sess.Len())
			return nil
		}
	}
}

// readTurn prompts for a guess and its feedback.
func (c *Console) readTurn() (turn, error) {
	word, err := c.prompt("Which word did you guess?: ")
	if err != nil {
		return turn{}, err
	}
	word = strings.ToLower(word)
	if word == "" {
		return turn{}, ErrSessionEnded
	}
	if c.cfg.Answer != "" {
		return turn{word: word, marks: feedback.Score(c.cfg.Answer, word)}, nil
	}
	for {
		line, err := c.prompt(fmt.Sprintf("Feedback for %s (g=green y=yellow -=gray): ", word))
		if err != nil {
			return turn{}, err
		}
		marks, err := feedback.Parse(line)
		if err != nil {
			c.printf("%v. Try again.\n", err)
			continue
		}
		return turn{word: word, marks: marks}, nil
	}
}

// prompt prints p and reads one trimmed line. End of input ends the session.
func (c *Console) prompt(p string) (string, error) {
	c.printf("%s", p)
	if !c.in.Scan() {
		c.printf("\n")
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrSessionEnded
	}
	return strings.TrimSpace(c.in.Text()), nil
}

var markColors = map[feedback.Mark]string{
	feedback.MarkConfirmed: "green",
	feedback.MarkPresent:   "yellow",
	feedback.MarkAbsent:    "light gray",
}

// echo prints the guess, coloured by its feedback when colour is on.
func (c *Console) echo(t turn) {
	if !c.cfg.Color {
		c.printf("%s %s\n", t.word, feedback.String(t.marks))
		return
	}
	var b strings.Builder
	for i, r := range []rune(t.word) {
		if i < len(t.marks) {
			b.WriteString(ansi.FGColorName(markColors[t.marks[i]]))
		}
		b.WriteRune(r)
	}
	b.WriteString(ansi.Clear)
	c.printf("%s\n", b.String())
}

// report writes the output file and prints the candidates or a pointer to the file.
func (c *Console) report(res solver.Result) error {
	if c.cfg.OutputPath != "" {
		if err := WriteCandidates(c.cfg.OutputPath, res.Candidates); err != nil {
			return err
		}
	}

	switch {
	case res.Count < c.cfg.ShowLimit, c.cfg.ShowLimit <= 0 && c.cfg.OutputPath == "":
		c.printf("%d Possible Wordle Words:\n", res.Count)
		for _, w := range res.Candidates {
			c.printf("%s\n", w)
		}
	case c.cfg.OutputPath != "":
		c.printf("See file %s for possible words. %d possible.\n", c.cfg.OutputPath, res.Count)
	default:
		c.printf("%d possible words, showing %d:\n", res.Count, c.cfg.ShowLimit)
		for _, w := range res.Candidates[:c.cfg.ShowLimit] {
			c.printf("%s\n", w)
		}
	}

	st := c.sess.State()
	var slots strings.Builder
	for _, sl := range st.Slots() {
		slots.WriteString(sl.String())
	}
	excluded := st.Excluded()
	possible := make([]rune, 0, c.sess.Alphabet().Len())
	for _, l := range c.sess.Alphabet().Letters() {
		if !slices.Contains(excluded, l) {
			possible = append(possible, l)
		}
	}
	c.printf("Known:    %s\n", slots.String())
	c.printf("Required: %s\n", string(st.Required()))
	c.printf("Possible: %s\n", string(possible))
	return nil
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}
