package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/stylec/internal/ir"
)

// RawOptions holds flags for the raw command.
type RawOptions struct {
	*RootOptions
	InputOptions
	Normalize bool
}

// NewRawCommand creates the raw command.
func NewRawCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RawOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "raw [files...]",
		Short: "Print the merged canonical style tree",
		Long: `Merge the style documents in order and print the canonical tree
as JSON, without expanding it into class names.

Keys keep their first-seen order. With --normalize, aliases are folded
into canonical property names (last declared wins) so equivalent trees
print identically.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRaw(opts, args, cmd)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().BoolVar(&opts.Normalize, "normalize", false, "fold aliases into canonical property names")

	return cmd
}

func runRaw(opts *RawOptions, files []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	partials, err := loadPartials(files, opts.Exprs, opts.Log)
	if err != nil {
		return inputFailure(formatter, err)
	}

	eng := opts.engine()
	tree := eng.Raw(partials...)
	if opts.Normalize {
		tree = eng.Normalize(tree)
	}

	if formatter.Format == "json" {
		return formatter.JSON(CLIResponse{Status: "ok", Data: tree})
	}

	data, err := ir.MarshalIndent(tree, "", "  ")
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}
	return formatter.Success(string(data))
}
