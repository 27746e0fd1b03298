package selfplay

import (
	"context"
	"math/rand"
	"testing"

	"skillchess/internal/skillchess"
)

func TestPlayKeepsBoardIntact(t *testing.T) {
	pairs := [][2]skillchess.Skill{
		{skillchess.SkillNone, skillchess.SkillNone},
		{skillchess.SkillRampage, skillchess.SkillBlitzkrieg},
		{skillchess.SkillTheocracy, skillchess.SkillSubjects},
		{skillchess.SkillMajesty, skillchess.SkillNone},
	}
	for i, p := range pairs {
		cfg := Config{MaxPlies: 30, White: p[0], Black: p[1], Revival: true, DeclineRate: 0.2}
		res, err := Play(cfg, rand.New(rand.NewSource(int64(i))))
		if err != nil {
			t.Fatalf("%v vs %v: %v", p[0], p[1], err)
		}
		if res.Plies > 30 {
			t.Fatalf("%v vs %v: played %d plies", p[0], p[1], res.Plies)
		}
		if _, err := skillchess.DecodePosition(res.FEN); err != nil {
			t.Fatalf("final FEN %q: %v", res.FEN, err)
		}
	}
}

func TestRunSummary(t *testing.T) {
	var calls int
	sum, err := Run(context.Background(), Config{Games: 3, MaxPlies: 10, Workers: 1}, func(int) { calls++ })
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if sum.Games != 3 || calls != 3 {
		t.Fatalf("summary: %+v calls=%d", sum, calls)
	}
	if sum.WhiteWins+sum.BlackWins+sum.Draws+sum.Unfinished != 3 {
		t.Fatalf("outcomes do not add up: %+v", sum)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, Config{Games: 2, MaxPlies: 5}, nil); err == nil {
		t.Fatalf("expected cancellation error")
	}
}
