package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ghostleg/pkg/store"
)

// historyCommand groups the commands that work on stored rounds.
func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"hist"},
		Short:   "List, show and delete stored rounds",
	}

	cmd.AddCommand(c.historyListCommand())
	cmd.AddCommand(c.historyShowCommand())
	cmd.AddCommand(c.historyDeleteCommand())
	return cmd
}

func (c *CLI) historyListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored rounds, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openStore(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer s.Close()

			rounds, err := s.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(rounds) == 0 {
				printInfo("No rounds stored yet")
				printNextStep("Play one", "ghostleg play -n ann,bob,cid")
				return nil
			}
			if err := writeLines(cmd.OutOrStdout(), historyTable(rounds, time.Now())); err != nil {
				return err
			}
			if limit > 0 && len(rounds) == limit {
				printDetail("showing the %d newest rounds, use --limit 0 for all", limit)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultListLimit, "maximum rounds to list (0 for all)")
	return cmd
}

func (c *CLI) historyShowCommand() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "show <round-id>",
		Short: "Print a stored round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.loadRound(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printKeyValue("ID", r.ID)
			printKeyValue("Created", r.CreatedAt.Local().Format(time.DateTime))
			printKeyValue("Seed", fmt.Sprint(r.Seed))
			printKeyValue("Rows", fmt.Sprint(r.Rows))
			printNewline()
			return drawRound(cmd.OutOrStdout(), r, width, 0, -1)
		},
	}

	cmd.Flags().IntVar(&width, "width", defaultDrawWidth, "canvas width in columns")
	return cmd
}

func (c *CLI) historyDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <round-id>...",
		Aliases: []string{"rm"},
		Short:   "Delete stored rounds",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openStore(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer s.Close()

			for _, id := range args {
				if err := s.Delete(cmd.Context(), id); err != nil {
					return err
				}
				printSuccess("Deleted %s", id)
			}
			return nil
		},
	}
}

// historyTable renders round summaries relative to now.
func historyTable(rounds []store.Summary, now time.Time) string {
	rows := make([][]string, len(rounds))
	for i, s := range rounds {
		rows[i] = []string{
			shortID(s.ID),
			formatAge(now.Sub(s.CreatedAt)),
			fmt.Sprint(s.Lanes()),
			truncateNames(s.Names, 40),
		}
	}

	return newTable("ID", "Created", "Lanes", "Players").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 0:
				return StyleNumber
			case col == 1:
				return StyleDim
			}
			return StyleValue
		}).
		Render()
}

// formatAge formats a duration as a short relative time.
func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// truncateNames joins names and cuts the result to n runes.
func truncateNames(names []string, n int) string {
	s := strings.Join(names, ", ")
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}
