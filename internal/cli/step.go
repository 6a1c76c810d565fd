package cli

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	mverrors "github.com/matzehuels/mergeviz/pkg/errors"
	"github.com/matzehuels/mergeviz/pkg/mem"
	"github.com/matzehuels/mergeviz/pkg/viz"
)

const stepUsageLine = "Usage: ./" + appName + " step <element count: int>"

// stepCommand creates the step command for browsing a recorded run.
func (c *CLI) stepCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step <element count>",
		Short: "Record a run and browse it frame by frame",
		Long: `Record a complete run without pauses and open an interactive viewer to
step through every frame forwards and backwards.

All frames are kept in memory, so the element count is limited to 256.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return mverrors.New(mverrors.ErrCodeUsage, stepUsageLine)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := mverrors.ParseCount(args[0])
			if err != nil {
				return err
			}
			if count > maxStepCount {
				return mverrors.New(mverrors.ErrCodeInvalidCount, "Element count must be within [%d, %d] for step (got %d)", mverrors.MinCount, maxStepCount, count)
			}
			var seed *uint64
			if cmd.Flags().Changed("seed") {
				seed = &c.flags.seed
			}
			return c.runStep(cmd.Context(), count, seed)
		},
	}
	return cmd
}

// record runs the whole sequence into a Recorder without pausing.
func record(ctx context.Context, count int, seed uint64, alloc mem.Allocator) (*viz.Recorder, viz.Summary, error) {
	rec := viz.NewRecorder(0)
	d, err := viz.NewDriver(viz.Config{
		Count:     count,
		Delay:     time.Nanosecond,
		Seed:      seed,
		Allocator: alloc,
		Sink:      rec,
		Sleeper: viz.SleeperFunc(func(ctx context.Context, _ time.Duration) error {
			return ctx.Err()
		}),
	})
	if err != nil {
		return nil, viz.Summary{}, err
	}
	summary, err := d.Run(ctx)
	return rec, summary, err
}

func (c *CLI) runStep(ctx context.Context, count int, seed *uint64) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.settings()
	if err != nil {
		return err
	}
	alloc, err := mem.ByName(cfg.Memory.Allocator)
	if err != nil {
		return err
	}

	defer registerHooks(logger)()
	prog := newProgress(logger)
	spin := newSpinner(ctx, os.Stderr, "Recording frames...", isTerminal(os.Stderr))
	rec, summary, err := record(ctx, count, seedOrClock(seed), alloc)
	spin.stop()
	if err != nil {
		return err
	}
	prog.done("Recorded run", "frames", rec.Len(), "swaps", summary.Sort.Swaps, "seed", summary.Seed)

	return c.view(ctx, NewFrameViewerModel(rec.Frames(), cfg.Glyphs()))
}

// view runs m as a full-screen program on c.Out.
func (c *CLI) view(ctx context.Context, m tea.Model) error {
	if c.viewer != nil {
		return c.viewer(m)
	}
	if !isTerminal(c.Out) {
		return mverrors.New(mverrors.ErrCodeUnsupported, "step needs an interactive terminal")
	}
	_, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithOutput(c.Out)).Run()
	return err
}
