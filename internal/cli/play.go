package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ghostleg/pkg/ladder"
	"github.com/matzehuels/ghostleg/pkg/layout"
	"github.com/matzehuels/ghostleg/pkg/round"
)

// footerHeight is the number of lines below the ladder canvas.
const footerHeight = 2

// playOptions holds options for the play command.
type playOptions struct {
	round     roundFlags
	tickRate  time.Duration
	tickSpeed int
}

// playCommand creates the play command for the interactive game.
func (c *CLI) playCommand() *cobra.Command {
	opts := playOptions{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a round in the terminal",
		Long: `Play generates a ladder for the given players and lets you trace each lane.

Keys:
  ←/h →/l   choose a lane
  enter/s   draw the chosen lane
  r         show or hide all results
  q         quit`,
		Example: `  ghostleg play -n ann,bob,cid -r coffee,lunch,free
  ghostleg play -n ann,bob,cid --seed 42 --tick-rate 100ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlay(cmd.Context(), opts)
		},
	}

	opts.round.register(cmd)
	cmd.Flags().DurationVar(&opts.tickRate, "tick-rate", 0, "animation frame interval (default from config)")
	cmd.Flags().IntVar(&opts.tickSpeed, "tick-speed", 0, "cells drawn per frame (default from config)")

	return cmd
}

func (c *CLI) runPlay(ctx context.Context, opts playOptions) error {
	r, err := c.newRound(ctx, &opts.round)
	if err != nil {
		return err
	}
	logRound(ctx, "round ready", r)

	tickRate, tickSpeed := c.config.TickRate, c.config.TickSpeed
	if opts.tickRate > 0 {
		tickRate = opts.tickRate
	}
	if opts.tickSpeed > 0 {
		tickSpeed = opts.tickSpeed
	}

	p := tea.NewProgram(newPlayModel(r, tickRate, tickSpeed), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// =============================================================================
// playModel - Interactive ladder game
// =============================================================================

type playState int

const (
	stateIdle    playState = iota // choosing a lane
	stateDrawing                  // animation running
	stateDone                     // path fully drawn
)

// tickMsg drives the animation.
type tickMsg time.Time

// playModel is the bubbletea model of the play command.
type playModel struct {
	round    *round.Round
	outcomes []round.Outcome

	tickRate  time.Duration
	tickSpeed int

	lane        int
	state       playState
	showResults bool

	width, height int
	grid          *layout.Grid
	anim          *ladder.Animator
	err           error
}

func newPlayModel(r *round.Round, tickRate time.Duration, tickSpeed int) playModel {
	return playModel{
		round:     r,
		outcomes:  r.Outcomes(),
		tickRate:  tickRate,
		tickSpeed: tickSpeed,
	}
}

func (m playModel) tick() tea.Cmd {
	return tea.Tick(m.tickRate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m playModel) Init() tea.Cmd {
	return nil
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tickMsg:
		if m.state != stateDrawing || m.anim == nil {
			return m, nil
		}
		m.anim.Advance(m.tickSpeed)
		if m.anim.Done() {
			m.state = stateDone
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m playModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "r":
		m.showResults = !m.showResults
	case "left", "h":
		m.selectLane(ladder.PreviousIndex(m.lane, m.round.Lanes()))
	case "right", "l":
		m.selectLane(ladder.NextIndex(m.lane, m.round.Lanes()))
	case "enter", "s":
		if m.state != stateIdle || m.grid == nil {
			return m, nil
		}
		path, _ := m.round.Path(m.lane)
		m.anim = ladder.NewAnimator(m.grid, path, m.lane)
		m.state = stateDrawing
		return m, m.tick()
	}
	return m, nil
}

// selectLane moves the cursor unless a path is being drawn.
func (m *playModel) selectLane(lane int) {
	if m.state == stateDrawing {
		return
	}
	m.lane = lane
	m.state = stateIdle
	m.anim = nil
}

// resize recomputes the grid. A running or finished animation is replayed
// on the new grid; a running one restarts from the top.
func (m *playModel) resize(width, height int) {
	m.width, m.height = width, height
	m.grid, m.err = layout.Compute(m.round.Lanes(), m.round.Rows, width, height-footerHeight, layout.DefaultOptions())
	if m.err != nil {
		m.grid = nil
		if m.state == stateDrawing {
			m.state = stateIdle
		}
		m.anim = nil
		return
	}
	if m.anim == nil {
		return
	}
	path, _ := m.round.Path(m.lane)
	m.anim = ladder.NewAnimator(m.grid, path, m.lane)
	if m.state == stateDone {
		for !m.anim.Done() {
			m.anim.Advance(m.width + m.height)
		}
	}
}

func (m playModel) View() string {
	if m.width == 0 {
		return ""
	}
	if m.err != nil {
		return StyleWarning.Render("Terminal too small for this ladder, please resize.") + "\n" +
			StyleDim.Render("q quit")
	}

	var b strings.Builder
	if m.showResults {
		b.WriteString(StyleTitle.Render("Results"))
		b.WriteString("\n\n")
		b.WriteString(outcomeTable(m.outcomes, m.lane))
		b.WriteString("\n\n")
		b.WriteString(StyleDim.Render("r back  q quit"))
		return b.String()
	}

	b.WriteString(renderLadder(m.grid, m.round, m.lane, m.anim).String())
	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ lane  ⏎ draw  r results  q quit"))
	return b.String()
}

func (m playModel) status() string {
	name := StyleValue.Render(m.round.Names[m.lane])
	switch m.state {
	case stateDrawing:
		return name + StyleDim.Render(" is climbing down...")
	case stateDone:
		o := m.outcomes[m.lane]
		return name + " " + StyleDim.Render(iconArrow) + " " + stylePath.Render(o.Result)
	}
	return StyleDim.Render("Lane ") + StyleNumber.Render(fmt.Sprint(m.lane+1)) + StyleDim.Render(": ") + name
}
