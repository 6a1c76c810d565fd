// Package cli implements the mergeviz command-line interface.
//
// The root command takes an element count and a frame delay and plays the
// merge-sort animation on standard output. Logs go to standard error.
//
// # Commands
//
//   - mergeviz <count> <delay>: play the animation
//   - step <count>: record the whole sequence and browse it frame by frame
//   - completion: generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context and tagged with a run id.
package cli

import (
	"errors"
	"io"
	"os"
	"slices"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/mergeviz/pkg/buildinfo"
	mverrors "github.com/matzehuels/mergeviz/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used in usage and completion text.
	appName = "mergeviz"

	// usageLine is printed when the positional arguments are missing.
	usageLine = "Usage: ./" + appName + " <element count: int> <delay: double>"

	// maxStepCount bounds the step command, which keeps every frame in memory.
	maxStepCount = 256
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives frames and user-facing messages.
	Out io.Writer

	flags globalFlags

	// viewer replaces the interactive frame viewer in tests.
	viewer func(tea.Model) error
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	verbose   bool
	config    string
	allocator string
	seed      uint64
	noColor   bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var wait float64

	root := &cobra.Command{
		Use:   appName + " <element count> <delay>",
		Short: "Mergeviz animates an in-place merge sort in the terminal",
		Long: `Mergeviz fills an array with the values 1..count, shuffles it, and sorts it
with an in-place, rotation-based merge sort. Every swap is drawn as a
histogram frame, followed by a pause of <delay> seconds.

The element count must be within [2, 32767] and the delay within
(0, 2147483647) seconds.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          positionalArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if c.flags.verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), withRunID(c.Logger)))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := mverrors.ParseCount(args[0])
			if err != nil {
				return err
			}
			delay, err := mverrors.ParseDelay(args[1])
			if err != nil {
				return err
			}

			opts := playOptions{count: count, delay: delay}
			if cmd.Flags().Changed("wait") {
				opts.wait = &wait
			}
			if cmd.Flags().Changed("seed") {
				opts.seed = &c.flags.seed
			}
			return c.runPlay(cmd.Context(), opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		if rangeErr := negativeArgError(cmd, err); rangeErr != nil {
			return rangeErr
		}
		return mverrors.Wrap(mverrors.ErrCodeUsage, err, "%s\n%s", err, usageLine)
	})

	pf := root.PersistentFlags()
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&c.flags.config, "config", "", "TOML config file (default $MERGEVIZ_CONFIG)")
	pf.StringVar(&c.flags.allocator, "allocator", "", "memory allocator: heap (default), mmap")
	pf.Uint64Var(&c.flags.seed, "seed", 0, "shuffle seed (default: current time)")
	pf.BoolVar(&c.flags.noColor, "no-color", false, "disable styled captions")

	root.Flags().Float64Var(&wait, "wait", 0, "pause after the waiting frame in seconds (default 1)")

	root.AddCommand(c.stepCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// positionalArgs requires exactly the element count and the delay.
func positionalArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return mverrors.New(mverrors.ErrCodeUsage, usageLine)
	}
	return nil
}

// negativeArgError reports the range error for a negative number that the
// flag parser rejected as an unknown shorthand, e.g. "mergeviz 5 -0.5". It
// returns nil when err is an ordinary flag error.
func negativeArgError(cmd *cobra.Command, err error) error {
	var notExist *pflag.NotExistError
	if !errors.As(err, &notExist) || notExist.GetSpecifiedShortnames() == "" {
		return nil
	}
	token := "-" + notExist.GetSpecifiedShortnames()
	if _, perr := strconv.ParseFloat(token, 64); perr != nil {
		return nil
	}

	// Positionals parsed before the failure keep their order.
	parsers := positionalParsers(cmd)
	args := append(slices.Clone(cmd.Flags().Args()), token)
	if len(args) > len(parsers) {
		return nil
	}
	for i, arg := range args {
		if err := parsers[i](arg); err != nil {
			return err
		}
	}
	return nil
}

// positionalParsers returns the validators for cmd's positional arguments.
func positionalParsers(cmd *cobra.Command) []func(string) error {
	count := func(s string) error {
		_, err := mverrors.ParseCount(s)
		return err
	}
	switch {
	case !cmd.HasParent():
		return []func(string) error{count, func(s string) error {
			_, err := mverrors.ParseDelay(s)
			return err
		}}
	case cmd.Name() == "step":
		return []func(string) error{count}
	}
	return nil
}
