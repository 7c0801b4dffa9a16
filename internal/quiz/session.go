package quiz

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/roach88/cjtrainer/internal/record"
)

// Banner opens every round.
const Banner = "======== T E S T  B E G I N ========"

// Session reads answers from one input stream across rounds.
type Session struct {
	in     *bufio.Reader
	out    io.Writer
	now    func() time.Time
	ids    IDGenerator
	logger *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now for elapsed-time reporting.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithIDGenerator replaces the UUIDv7 session id generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Session) { s.ids = g }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession creates a session reading answers from in and writing prompts
// and feedback to out.
func NewSession(in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		in:     bufio.NewReader(in),
		out:    out,
		now:    time.Now,
		ids:    UUIDv7Generator{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result summarizes one round.
type Result struct {
	SessionID string          `json:"session_id"`
	Batch     []record.Record `json:"batch"`
	Score     int             `json:"score"`
	Asked     int             `json:"asked"`
	Elapsed   time.Duration   `json:"elapsed"`
}

// Run asks every record in batch once and returns the graded copy. The
// returned batch holds the same records in the same order; only ratings
// differ.
//
// If input ends or ctx is cancelled mid-round, Run returns the partial
// result together with io.EOF or the context error. Records not yet asked
// keep their ratings, so the partial batch is safe to apply.
func (s *Session) Run(ctx context.Context, batch []record.Record) (Result, error) {
	res := Result{
		SessionID: s.ids.Generate(),
		Batch:     slices.Clone(batch),
	}
	log := s.logger.With("session_id", res.SessionID)
	log.Debug("round started", "records", len(batch))

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, Banner)
	start := s.now()

	for i := range res.Batch {
		if err := ctx.Err(); err != nil {
			return s.finish(res, start), err
		}

		r := &res.Batch[i]
		ok, err := s.ask("", r)
		if err != nil {
			return s.finish(res, start), err
		}
		res.Asked++

		if ok {
			res.Score++
			r.Rating = Correct(r.Rating)
			fmt.Fprintf(s.out, "Correct! Score: %d/%d\n", res.Score, res.Asked)
		} else {
			r.Rating = Missed(r.Rating)
			fmt.Fprintf(s.out, "===> Wrong! %s should be %q!  Score:%d/%d\n",
				r.Character, r.Code, res.Score, res.Asked)
			if err := s.practice(ctx, r); err != nil {
				return s.finish(res, start), err
			}
		}
		log.Debug("answer graded", "code", r.Code, "correct", ok, "rating", r.Rating)
	}

	res = s.finish(res, start)
	fmt.Fprintf(s.out, "Time taken: %d seconds\n", int(res.Elapsed.Seconds()))
	log.Info("round finished", "score", res.Score, "asked", res.Asked, "elapsed", res.Elapsed)
	return res, nil
}

// practice repeats the prompt until the right code is typed.
func (s *Session) practice(ctx context.Context, r *record.Record) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ok, err := s.ask("Practice:", r)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
}

// ask prints the prompt and reads one answer. It returns io.EOF when input
// ends before any answer is typed.
func (s *Session) ask(prompt string, r *record.Record) (bool, error) {
	fmt.Fprintf(s.out, "%s[%s]?\n", prompt, r.Character)

	line, err := s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || strings.TrimSpace(line) == "" {
			return false, err
		}
	}
	return NormalizeAnswer(line) == r.Code, nil
}

func (s *Session) finish(res Result, start time.Time) Result {
	res.Elapsed = s.now().Sub(start)
	return res
}
