package cmd

import (
	"fmt"
	"runtime"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"skillchess/internal/selfplay"
)

// SPIN is the spinner character set used while games run.
const SPIN = 14

func SelfPlay() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selfplay",
		Short: "Play random games between two skills",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`selfplay plays random legal moves for both sides until a
			game ends or hits the ply limit, and prints how the games
			finished. Every position is checked to come back unchanged
			after its legal moves are listed.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			white, black, err := skillFlags(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			games, _ := flags.GetInt("games")
			plies, _ := flags.GetInt("max-plies")
			workers, _ := flags.GetInt("workers")
			seed, _ := flags.GetInt64("seed")
			revival, _ := flags.GetBool("revival")
			decline, _ := flags.GetFloat64("decline")

			cfg := selfplay.Config{
				Games:       games,
				MaxPlies:    plies,
				White:       white,
				Black:       black,
				Revival:     revival,
				Seed:        seed,
				Workers:     workers,
				DeclineRate: decline,
			}

			s := spinner.New(spinner.CharSets[SPIN], 100*time.Millisecond)
			s.Suffix = fmt.Sprintf(" playing 0/%d", games)
			s.Start()
			start := time.Now()
			sum, err := selfplay.Run(cmd.Context(), cfg, func(done int) {
				s.Lock()
				s.Suffix = fmt.Sprintf(" playing %d/%d", done, games)
				s.Unlock()
			})
			s.Stop()
			if err != nil {
				return err
			}

			logrus.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Debug("selfplay finished")
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s vs %s, %d games\n", white, black, sum.Games)
			fmt.Fprintf(out, "white wins: %d\nblack wins: %d\ndraws:      %d\nunfinished: %d\n",
				sum.WhiteWins, sum.BlackWins, sum.Draws, sum.Unfinished)
			if sum.Games > 0 {
				fmt.Fprintf(out, "avg plies:  %.1f\n", float64(sum.Plies)/float64(sum.Games))
			}
			fmt.Fprintf(out, "bonuses:    %d\nrevivals:   %d\n", sum.Bonuses, sum.Revivals)
			return nil
		},
	}
	addSkillFlags(cmd)
	cmd.Flags().Int("games", 10, "Number of games")
	cmd.Flags().Int("max-plies", 200, "Ply limit per game")
	cmd.Flags().Int("workers", runtime.NumCPU(), "Games played in parallel")
	cmd.Flags().Int64("seed", time.Now().UnixNano(), "Random seed")
	cmd.Flags().Bool("revival", false, "Enable the revival rule")
	cmd.Flags().Float64("decline", 0, "Chance of declining a bonus move")
	return cmd
}
