package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/stylec/internal/compiler"
	"github.com/roach88/stylec/internal/ir"
)

// InputOptions holds the style input flags shared by compile, raw,
// explain and validate.
type InputOptions struct {
	Exprs []string // inline JSON partials, applied after the files
}

func (in *InputOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&in.Exprs, "expr", "e", nil, "inline JSON style tree (repeatable)")
}

// InputError reports style input that could not be loaded.
type InputError struct {
	Code    string
	Source  string
	Message string
	Err     error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// loadPartials decodes every file, then every expression, in order.
// Each source contributes its partials; a source holding a list
// contributes one partial per item.
func loadPartials(files, exprs []string, log *zap.Logger) ([]ir.Value, error) {
	if len(files) == 0 && len(exprs) == 0 {
		return nil, &InputError{Code: ErrCodeNoInput, Source: "input", Message: "no style files or -e expressions given"}
	}

	var partials []ir.Value
	for _, file := range files {
		values, err := compiler.LoadFile(file)
		if err != nil {
			code := ErrCodeParseFailed
			if errors.Is(err, fs.ErrNotExist) {
				code = ErrCodeNotFound
			}
			return nil, &InputError{Code: code, Source: file, Message: err.Error(), Err: err}
		}
		log.Debug("loaded style document", zap.String("file", file), zap.Int("partials", len(values)))
		partials = append(partials, values...)
	}
	for i, expr := range exprs {
		values, err := compiler.ParseExpression(expr)
		if err != nil {
			source := fmt.Sprintf("-e[%d]", i)
			return nil, &InputError{Code: ErrCodeParseFailed, Source: source, Message: err.Error(), Err: err}
		}
		partials = append(partials, values...)
	}
	return partials, nil
}

// inputFailure reports a loadPartials error; input errors are command
// errors (exit code 2).
func inputFailure(f *OutputFormatter, err error) error {
	var inErr *InputError
	if errors.As(err, &inErr) {
		return f.Fail(ExitCommandError, inErr.Code, inErr.Message, nil)
	}
	return f.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
}
