package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/stylec/internal/engine"
	"github.com/roach88/stylec/internal/ir"
)

// ExplainOptions holds flags for the explain command.
type ExplainOptions struct {
	*RootOptions
	InputOptions
}

// Explanation is one declaration with the class name it renders to.
type Explanation struct {
	ClassName string `json:"class_name"`
	Slug      string `json:"slug"`
	ir.Decl
}

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExplainOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "explain [files...]",
		Short: "List the atomic declarations behind each class name",
		Long: `Merge and expand the style documents like compile, then print one
line per declaration: class name, condition path, property and value.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(opts, args, cmd)
		},
	}

	opts.addFlags(cmd)

	return cmd
}

func runExplain(opts *ExplainOptions, files []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	partials, err := loadPartials(files, opts.Exprs, opts.Log)
	if err != nil {
		return inputFailure(formatter, err)
	}

	eng := opts.engine()
	emit := eng.EmitOptions()
	decls := eng.Explain(partials...)

	out := make([]Explanation, len(decls))
	for i, d := range decls {
		out[i] = Explanation{
			ClassName: emit.ClassName(d),
			Slug:      engine.Slug(d, emit.Separator),
			Decl:      d,
		}
	}

	if formatter.Format == "json" {
		return formatter.JSON(CLIResponse{Status: "ok", Data: out})
	}

	w := formatter.Writer
	if len(out) == 0 {
		fmt.Fprintln(w, "(no declarations)")
		return nil
	}
	for _, e := range out {
		conditions := "-"
		if len(e.Conditions) > 0 {
			conditions = strings.Join(e.Conditions, " ")
		}
		fmt.Fprintf(w, "%s\t%s\t%s: %s\n", e.ClassName, conditions, e.Property, e.Value)
	}
	return nil
}
