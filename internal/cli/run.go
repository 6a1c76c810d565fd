package cli

import (
	"context"
	"fmt"

	"github.com/tebeka/atexit"

	"github.com/matzehuels/mergeviz/internal/config"
	"github.com/matzehuels/mergeviz/pkg/mem"
	"github.com/matzehuels/mergeviz/pkg/viz"
)

// resetTerminal drops any styling left active by an interrupted frame.
const resetTerminal = "\x1b[0m"

// playOptions are the validated positional arguments and the flags that
// only the root command has.
type playOptions struct {
	count int
	delay float64  // seconds
	wait  *float64 // overrides the configured wait when set
	seed  *uint64  // wall-clock seed when nil
}

// settings resolves the configuration layers and applies the persistent
// flags on top.
func (c *CLI) settings() (config.Config, error) {
	env, err := config.Env(config.DotEnvFile)
	if err != nil {
		return config.Config{}, err
	}
	path := c.flags.config
	if path == "" {
		path = env[config.EnvConfig]
	}
	cfg, err := config.Load(path, env)
	if err != nil {
		return cfg, err
	}
	if c.flags.allocator != "" {
		cfg.Memory.Allocator = c.flags.allocator
	}
	if c.flags.noColor {
		cfg.Render.Color = false
	}
	return cfg, cfg.Validate()
}

func seedOrClock(seed *uint64) uint64 {
	if seed != nil {
		return *seed
	}
	return viz.WallClockSeed()
}

func (c *CLI) runPlay(ctx context.Context, opts playOptions) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.settings()
	if err != nil {
		return err
	}
	if opts.wait != nil {
		cfg.Timing.Wait = *opts.wait
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	alloc, err := mem.ByName(cfg.Memory.Allocator)
	if err != nil {
		return err
	}

	if width, height, ok := terminalSize(c.Out); ok {
		for _, w := range sizeWarnings(width, height, opts.count) {
			logger.Warn(w)
		}
	}

	renderOpts := []viz.RenderOption{viz.WithGlyphs(cfg.Glyphs())}
	if cfg.Render.Color && isTerminal(c.Out) {
		renderOpts = append(renderOpts, viz.WithStyles(StyleTitle, StyleMarker))
		atexit.Register(func() { fmt.Fprint(c.Out, resetTerminal) })
	}

	seed := seedOrClock(opts.seed)
	d, err := viz.NewDriver(viz.Config{
		Count:     opts.count,
		Delay:     viz.DelayDuration(opts.delay),
		Wait:      viz.DelayDuration(cfg.Timing.Wait),
		NoWait:    cfg.Timing.Wait == 0,
		Seed:      seed,
		Allocator: alloc,
		Sink:      viz.NewRenderer(c.Out, renderOpts...),
		Sleeper:   viz.TimerSleeper{},
	})
	if err != nil {
		return err
	}

	defer registerHooks(logger)()
	logger.Debug("starting", "values", opts.count, "delay", opts.delay, "seed", seed, "allocator", alloc.Name())

	prog := newProgress(logger)
	summary, err := d.Run(ctx)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Sorted %d values", summary.Count),
		"frames", summary.Frames,
		"swaps", summary.Sort.Swaps,
		"comparisons", summary.Sort.Comparisons,
		"seed", summary.Seed,
	)
	return nil
}
