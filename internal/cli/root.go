package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/stylec/internal/config"
	"github.com/roach88/stylec/internal/engine"
)

// RootOptions holds global flags for all commands, and the state
// PersistentPreRunE resolves from them.
type RootOptions struct {
	Verbose      bool
	Format       string // "json" | "text"
	Preset       string // preset file, empty for the embedded default
	SettingsFile string

	Settings *Settings
	Tables   *config.Tables
	Log      *zap.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the stylec CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "stylec",
		Short: "stylec - atomic class names from style objects",
		Long: `Compile nested style objects into deterministic atomic class names.

Style documents are YAML, JSON or CUE files (or inline JSON with -e).
Several documents are merged in order, later values winning, then
expanded into one class per property, condition and breakpoint.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Preset, "preset", "", "preset file (.yaml, .json or .cue)")
	cmd.PersistentFlags().StringVar(&opts.SettingsFile, "settings", "", "settings file")

	// Add subcommands
	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewRawCommand(opts))
	cmd.AddCommand(NewExplainCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewRulesCommand(opts))
	cmd.AddCommand(NewPresetCommand(opts))

	return cmd
}

// Execute runs the CLI with the process arguments and returns the exit code.
func Execute() int {
	cmd := NewRootCommand()
	err := cmd.Execute()
	var exitErr *ExitError
	if err != nil && !errors.As(err, &exitErr) {
		// cobra usage errors and anything not reported by a command
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return GetExitCode(err)
}

// resolve layers the settings, builds the logger and loads the preset.
// Preset errors are configuration errors and exit with ExitCommandError.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	settings, err := LoadSettings(cmd, o.SettingsFile)
	if err != nil {
		return o.formatter(cmd).Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}
	o.Settings = settings
	o.Format = settings.Format
	o.Verbose = settings.Verbose
	o.Preset = settings.Preset

	if !isValidFormat(o.Format) {
		format := o.Format
		o.Format = "text"
		return o.formatter(cmd).Fail(ExitCommandError, ErrCodeGeneric,
			fmt.Sprintf("invalid format %q: must be one of %v", format, ValidFormats), nil)
	}

	o.Log = newLogger(cmd.ErrOrStderr(), o.Verbose)

	preset := config.Default()
	if o.Preset != "" {
		preset, err = config.Load(o.Preset)
		if err != nil {
			return o.presetError(cmd, err)
		}
	}
	tables, err := config.NewTables(preset)
	if err != nil {
		return o.presetError(cmd, err)
	}
	o.Tables = tables
	o.Log.Debug("preset loaded",
		zap.String("preset", o.presetName()),
		zap.String("digest", tables.Digest()))
	return nil
}

func (o *RootOptions) presetError(cmd *cobra.Command, err error) error {
	errs := config.Errors(err)
	f := o.formatter(cmd)
	if f.Format == "json" {
		_ = f.JSON(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: errs[0].Code, Message: "invalid preset " + o.presetName(), Details: errs},
		})
	} else {
		fmt.Fprintf(f.Writer, "✗ Invalid preset %s\n\n", o.presetName())
		for _, e := range errs {
			fmt.Fprintf(f.Writer, "  %s\n", e)
		}
	}
	return WrapExitError(ExitCommandError, "invalid preset", err)
}

func (o *RootOptions) presetName() string {
	if o.Preset == "" {
		return "(default)"
	}
	return o.Preset
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:  o.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: o.Verbose,
	}
}

// engine builds an engine on the resolved tables. The hash setting can
// only switch hashing on; a preset with hash: true always hashes.
func (o *RootOptions) engine() *engine.Engine {
	opts := []engine.Option{engine.WithLogger(o.Log.Named("engine"))}
	if o.Settings.Hash {
		opts = append(opts, engine.WithHash(true))
	}
	return engine.New(o.Tables, opts...)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
