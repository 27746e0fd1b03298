package selfplay

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"skillchess/internal/skillchess"
)

// ErrBoardChanged means enumerating legal moves left the board different
// from how it was found.
var ErrBoardChanged = errors.New("board changed by move evaluation")

type Config struct {
	Games    int
	MaxPlies int
	White    skillchess.Skill
	Black    skillchess.Skill
	Revival  bool
	Seed     int64
	Workers  int
	// DeclineRate is the chance of passing on a granted bonus move.
	DeclineRate float64
}

func (c Config) withDefaults() Config {
	if c.Games <= 0 {
		c.Games = 1
	}
	if c.MaxPlies <= 0 {
		c.MaxPlies = 200
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	return c
}

// Result describes one finished playout.
type Result struct {
	Plies    int
	Winner   skillchess.Color
	Reason   skillchess.Reason
	Bonuses  int
	Revivals int
	FEN      string
}

type Summary struct {
	Games      int
	WhiteWins  int
	BlackWins  int
	Draws      int
	Unfinished int
	Plies      int
	Bonuses    int
	Revivals   int
}

func (s *Summary) add(r Result) {
	s.Games++
	s.Plies += r.Plies
	s.Bonuses += r.Bonuses
	s.Revivals += r.Revivals
	switch {
	case r.Reason == skillchess.ReasonNone:
		s.Unfinished++
	case r.Winner == skillchess.White:
		s.WhiteWins++
	case r.Winner == skillchess.Black:
		s.BlackWins++
	default:
		s.Draws++
	}
}

// Play runs one random playout. Before every move it checks that listing
// the legal moves handed the board back unchanged.
func Play(cfg Config, rng *rand.Rand) (Result, error) {
	cfg = cfg.withDefaults()
	m := skillchess.NewMatch(cfg.White, cfg.Black, skillchess.Options{Revival: cfg.Revival})
	if err := m.ApplySetup(); err != nil {
		return Result{}, err
	}

	res := Result{Winner: skillchess.NoColor}
	for res.Plies < cfg.MaxPlies && m.Phase() != skillchess.PhaseOver {
		before := m.FEN()
		moves := m.LegalMoves()
		if after := m.FEN(); after != before {
			return res, fmt.Errorf("%w: ply %d: %q became %q", ErrBoardChanged, res.Plies, before, after)
		}

		if m.Phase() == skillchess.PhaseBonusPending && (len(moves) == 0 || rng.Float64() < cfg.DeclineRate) {
			if _, err := m.DeclineBonus(m.Turn()); err != nil {
				return res, err
			}
			continue
		}
		if len(moves) == 0 {
			break
		}

		mv := moves[rng.Intn(len(moves))]
		out, err := m.Play(m.Turn(), mv)
		if err != nil {
			return res, fmt.Errorf("ply %d %s: %w", res.Plies, mv, err)
		}
		if !out.Accepted {
			return res, fmt.Errorf("ply %d: listed move %s rejected", res.Plies, mv)
		}
		res.Plies++
		if out.Bonus {
			res.Bonuses++
		}
		if out.Revived.Valid() {
			res.Revivals++
		}
	}
	res.Winner = m.Winner()
	res.Reason = m.Reason()
	res.FEN = m.FEN()
	return res, nil
}

// Run plays cfg.Games playouts on cfg.Workers goroutines. progress, when
// set, is called with the number of finished games.
func Run(ctx context.Context, cfg Config, progress func(done int)) (Summary, error) {
	cfg = cfg.withDefaults()
	results := make([]Result, cfg.Games)

	var done atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Games; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(cfg.Seed + int64(i)))
			r, err := Play(cfg, rng)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			results[i] = r
			logrus.WithFields(logrus.Fields{
				"game":   i,
				"plies":  r.Plies,
				"winner": r.Winner,
				"reason": r.Reason,
			}).Trace("playout finished")
			n := done.Add(1)
			if progress != nil {
				progress(int(n))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	var sum Summary
	for _, r := range results {
		sum.add(r)
	}
	return sum, nil
}
