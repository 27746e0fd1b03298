package cmd

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"skillchess/internal/skillchess"
)

func Analyze() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze fen",
		Short: "Report check, checkmate and legal moves for a position",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`analyze looks at a single position under the given skills
			and prints whether the side to move is in check, whether it
			is checkmated and which moves it may play.

			The position is taken as is: no skill setup is applied to
			it, so a Theocracy side should already be without queens.`),
		Example: heredoc.Doc(`
			$ skillchess analyze "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1" --white rampage
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			white, black, err := skillFlags(cmd)
			if err != nil {
				return err
			}
			pos, err := skillchess.DecodePosition(args[0])
			if err != nil {
				return err
			}

			side := pos.SideToMove()
			skills := [2]skillchess.Skill{white, black}
			rules := skillchess.Rules{
				Mover:    skills[side],
				Attacker: skills[side.Other()],
				Anchor:   skillchess.NoSquare,
			}
			moves := skillchess.LegalMoves(pos, rules, false)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "side to move: %s\n", side)
			fmt.Fprintf(out, "in check:     %t\n", skillchess.IsCheck(pos, side, skills[side], skills[side.Other()]))
			fmt.Fprintf(out, "checkmate:    %t\n", skillchess.IsCheckmate(pos, skills[side], skills[side.Other()]))
			names := make([]string, 0, len(moves))
			for _, m := range moves {
				names = append(names, m.String())
			}
			fmt.Fprintf(out, "moves (%d):   %s\n", len(moves), strings.Join(names, " "))
			return nil
		},
	}
	addSkillFlags(cmd)
	return cmd
}

func addSkillFlags(cmd *cobra.Command) {
	help := "Skill (" + strings.Join(skillchess.SkillStrings(), ", ") + ")"
	cmd.Flags().String("white", "none", "White's "+help)
	cmd.Flags().String("black", "none", "Black's "+help)
}

func skillFlags(cmd *cobra.Command) (white, black skillchess.Skill, err error) {
	w, _ := cmd.Flags().GetString("white")
	b, _ := cmd.Flags().GetString("black")
	if white, err = skillchess.ParseSkill(w); err != nil {
		return white, black, fmt.Errorf("--white %q: %w", w, err)
	}
	if black, err = skillchess.ParseSkill(b); err != nil {
		return white, black, fmt.Errorf("--black %q: %w", b, err)
	}
	return white, black, nil
}
