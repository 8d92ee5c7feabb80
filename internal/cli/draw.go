package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ghostleg/pkg/errors"
	"github.com/matzehuels/ghostleg/pkg/ladder"
	"github.com/matzehuels/ghostleg/pkg/layout"
	"github.com/matzehuels/ghostleg/pkg/round"
)

const defaultDrawWidth = 80

// drawOptions holds options for the draw command.
type drawOptions struct {
	round  roundFlags
	width  int
	height int
	lane   int
}

// drawCommand creates the draw command, a non-interactive play.
func (c *CLI) drawCommand() *cobra.Command {
	opts := drawOptions{}

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Print a ladder and its results",
		Long: `Draw generates a ladder and prints it with the outcome of every player.

With --lane the path of that player (1-based) is traced on the ladder.`,
		Example: `  ghostleg draw -n ann,bob,cid
  ghostleg draw -n ann,bob,cid -r coffee,lunch,free --lane 2 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.lane > len(opts.round.names) {
				return errors.New(errors.ErrCodeInvalidInput, "lane %d out of range [1, %d]", opts.lane, len(opts.round.names))
			}
			r, err := c.newRound(cmd.Context(), &opts.round)
			if err != nil {
				return err
			}
			if err := drawRound(cmd.OutOrStdout(), r, opts.width, opts.height, opts.lane-1); err != nil {
				return err
			}
			if !opts.round.noSave {
				printSuccess("Saved round %s", StyleNumber.Render(r.ID))
				printNextStep("Export it", "ghostleg export "+r.ID+" -f svg")
			}
			return nil
		},
	}

	opts.round.register(cmd)
	cmd.Flags().IntVar(&opts.width, "width", defaultDrawWidth, "canvas width in columns")
	cmd.Flags().IntVar(&opts.height, "height", 0, "canvas height in lines (default fits the rows)")
	cmd.Flags().IntVar(&opts.lane, "lane", 0, "trace this player's path, 1-based (0 traces none)")

	return cmd
}

// drawHeight is the smallest height that gives every row two lines.
func drawHeight(rows int) int {
	return 2*layout.DefaultLabelHeight + 2*(rows+1)
}

// drawRound prints r with lane traced, or untraced when lane is negative.
func drawRound(w io.Writer, r *round.Round, width, height, lane int) error {
	if lane >= r.Lanes() {
		return errors.New(errors.ErrCodeInvalidInput, "lane %d out of range [1, %d]", lane+1, r.Lanes())
	}
	if height <= 0 {
		height = drawHeight(r.Rows)
	}
	g, err := layout.Compute(r.Lanes(), r.Rows, width, height, layout.DefaultOptions())
	if err != nil {
		return err
	}

	var (
		a        *ladder.Animator
		selected = -1
	)
	if lane >= 0 {
		path, _ := r.Path(lane)
		a = ladder.NewAnimator(g, path, lane)
		for !a.Done() {
			a.Advance(width + height)
		}
		selected = lane
	}

	if err := writeLines(w, renderLadder(g, r, selected, a).String()); err != nil {
		return err
	}
	return writeLines(w, outcomeTable(r.Outcomes(), selected))
}
