package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/stylec/internal/compiler"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	InputOptions
	Strict bool // findings fail the command
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                       `json:"valid"`
	Errors []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Lint style documents against the preset",
		Long: `Decode and merge the style documents, then report input the compiler
accepts but resolves silently: unknown properties, condition keys holding
scalars, unrecognised condition keys, and responsive arrays the breakpoint
registry cannot cover.

Findings are reported with exit code 0 unless --strict is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args, cmd)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "exit with code 1 when there are findings")

	return cmd
}

func runValidate(opts *ValidateOptions, files []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	partials, err := loadPartials(files, opts.Exprs, opts.Log)
	if err != nil {
		return inputFailure(formatter, err)
	}

	tree := opts.engine().Raw(partials...)
	findings := compiler.Lint(tree, opts.Tables)
	opts.Log.Debug("lint finished", zap.Int("findings", len(findings)))

	if len(findings) == 0 {
		return outputValidateSuccess(formatter)
	}
	return outputValidationErrors(formatter, findings, opts.Strict)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true})
	}

	fmt.Fprintln(formatter.Writer, "✓ All styles valid")
	return nil
}

// outputValidationErrors outputs the lint findings. Under strict they are
// a validation failure (exit code 1).
func outputValidationErrors(formatter *OutputFormatter, errs []compiler.ValidationError, strict bool) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "ok",
			Data:   ValidationResult{Valid: false, Errors: errs},
		}
		if strict {
			response.Status = "error"
			response.Error = &CLIError{
				Code:    ErrCodeLintFailed,
				Message: fmt.Sprintf("%d lint finding(s)", len(errs)),
			}
		}
		if err := formatter.JSON(response); err != nil {
			return err
		}
	} else {
		mark := "!"
		if strict {
			mark = "✗"
		}
		fmt.Fprintf(formatter.Writer, "%s %d finding(s)\n\n", mark, len(errs))
		for _, e := range errs {
			fmt.Fprintf(formatter.Writer, "  %s %s: %s\n", e.Code, e.Field, e.Message)
		}
	}

	if strict {
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d finding(s)", len(errs)))
	}
	return nil
}
