package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ghostleg/pkg/errors"
	"github.com/matzehuels/ghostleg/pkg/render"
	"github.com/matzehuels/ghostleg/pkg/round"
)

// exportFormats are the supported output formats, in the order they are
// written.
var exportFormats = []string{"dot", "svg", "png", "json"}

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output  string   // base path; the format extension is appended
	formats []string // output formats: "dot", "svg", "png", "json"
	lane    int      // highlighted player, 1-based; 0 highlights none
}

// exportCommand creates the export command for writing a round to files.
func (c *CLI) exportCommand() *cobra.Command {
	var formatsStr string
	opts := exportOpts{}

	cmd := &cobra.Command{
		Use:   "export <round-id|round.json>",
		Short: "Export a round as DOT, SVG, PNG or JSON",
		Long: `Export writes a stored round, or a round saved as JSON, to one file per format.

SVG and PNG are rendered with Graphviz; --lane highlights one player's path.`,
		Example: `  ghostleg export 0d4f0a5e-8c55-4f0e-9c8e-2b1b4e1b7d00 -f svg,png --lane 2
  ghostleg export round.json -f dot -o ladder`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			r, err := c.loadRound(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return runExport(cmd.Context(), r, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default ghostleg-<id>)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, json (comma-separated)")
	cmd.Flags().IntVar(&opts.lane, "lane", 0, "highlight this player's path, 1-based")

	return cmd
}

// loadRound reads ref as a JSON file when it names one, and from the
// configured store otherwise.
func (c *CLI) loadRound(ctx context.Context, ref string) (*round.Round, error) {
	if strings.HasSuffix(ref, ".json") {
		if _, err := os.Stat(ref); err == nil {
			r, err := render.ReadJSONFile(ref)
			if err != nil {
				return nil, err
			}
			logRound(ctx, "round read from file", r)
			return r, nil
		}
	}

	s, err := c.openStore(ctx, false)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Get(ctx, ref)
}

// parseFormats parses the --format flag. Empty means svg.
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

func validateFormats(formats []string) error {
	for _, f := range formats {
		if !slices.Contains(exportFormats, f) {
			return errors.New(errors.ErrCodeInvalidInput,
				"invalid format %q (must be one of %s)", f, strings.Join(exportFormats, ", "))
		}
	}
	return nil
}

// basePath derives the output path without extension. A known format
// extension on output is stripped.
func basePath(output, id string) string {
	if output == "" {
		return "ghostleg-" + shortID(id)
	}
	ext := filepath.Ext(output)
	if slices.Contains(exportFormats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func runExport(ctx context.Context, r *round.Round, opts *exportOpts) error {
	logger := loggerFromContext(ctx)

	lane := render.NoLane
	if opts.lane > 0 {
		if opts.lane > r.Lanes() {
			return errors.New(errors.ErrCodeInvalidInput, "lane %d out of range [1, %d]", opts.lane, r.Lanes())
		}
		lane = opts.lane - 1
	}

	dot := render.ToDOT(r, render.DOTOptions{Lane: lane})
	base := basePath(opts.output, r.ID)

	for _, format := range opts.formats {
		prog := newProgress(logger)
		data, err := exportData(ctx, r, dot, format)
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		path := base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		prog.done("exported", "file", path, "bytes", len(data))
		printFile(path)
	}
	return nil
}

// exportData renders r in one format. Graphviz renders run behind a spinner.
func exportData(ctx context.Context, r *round.Round, dot, format string) ([]byte, error) {
	switch format {
	case "dot":
		return []byte(dot), nil
	case "json":
		var b strings.Builder
		if err := render.WriteJSON(r, &b); err != nil {
			return nil, err
		}
		return []byte(b.String()), nil
	case "svg":
		return withSpinner(ctx, "Rendering SVG", func(ctx context.Context) ([]byte, error) {
			return render.RenderSVG(ctx, dot)
		})
	case "png":
		return withSpinner(ctx, "Rendering PNG", func(ctx context.Context) ([]byte, error) {
			return render.RenderPNG(ctx, dot)
		})
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown format %q", format)
}
