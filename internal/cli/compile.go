package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/stylec/internal/engine"
	"github.com/roach88/stylec/internal/ir"
	"github.com/roach88/stylec/internal/store"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	InputOptions
	DB   string // registry database path
	Hash bool
}

// CompileResult is the JSON payload of the compile command.
type CompileResult struct {
	ClassName     string   `json:"class_name"`
	Classes       []string `json:"classes"`
	CompilationID string   `json:"compilation_id,omitempty"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile [files...]",
		Short: "Compile style documents to a class name string",
		Long: `Merge the style documents in order, expand the result and print
the atomic class names, space separated.

With --db the compilation and its rules are recorded in the registry
under a new run.

Examples:
  stylec compile card.yaml
  stylec compile base.yaml -e '{"_hover": {"bg": "red.200"}}'
  stylec compile card.cue --db styles.db --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args, cmd)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVar(&opts.DB, "db", "", "record the compilation in this registry database")
	cmd.Flags().BoolVar(&opts.Hash, "hash", false, "emit hashed class names")

	return cmd
}

func runCompile(opts *CompileOptions, files []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	partials, err := loadPartials(files, opts.Exprs, opts.Log)
	if err != nil {
		return inputFailure(formatter, err)
	}

	eng := opts.engine()
	tree := eng.Raw(partials...)
	decls := eng.Expand(tree)
	emit := eng.EmitOptions()
	result := CompileResult{
		ClassName: engine.Emit(decls, emit),
		Classes:   engine.Classes(decls, emit),
	}

	var runID string
	if opts.Settings.DB != "" {
		runID, result.CompilationID, err = recordCompilation(cmd.Context(), opts, tree, decls, emit)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
		}
	}

	if formatter.Format == "json" {
		return formatter.JSON(CLIResponse{Status: "ok", Data: result, RunID: runID})
	}
	return formatter.Success(result.ClassName)
}

// recordCompilation writes a run and the compilation to the registry.
func recordCompilation(ctx context.Context, opts *CompileOptions, tree *ir.Object, decls []ir.Decl, emit engine.EmitOptions) (runID, compilationID string, err error) {
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(opts.Settings.DB)
	if err != nil {
		return "", "", err
	}
	defer st.Close()

	var gen store.RunTokenGenerator = store.UUIDv7Generator{}
	digest := opts.Tables.Digest()
	run := store.NewRun(gen.Generate(), digest)
	if err := st.WriteRun(ctx, run); err != nil {
		return "", "", err
	}

	comp, err := store.NewCompilation(run.ID, digest, tree, decls, emit)
	if err != nil {
		return "", "", err
	}
	if err := st.WriteCompilation(ctx, comp); err != nil {
		return "", "", fmt.Errorf("record compilation: %w", err)
	}

	opts.Log.Info("compilation recorded",
		zap.String("db", opts.Settings.DB),
		zap.String("run", run.ID),
		zap.String("compilation", comp.ID),
		zap.Int("rules", len(comp.Rules)))
	return run.ID, comp.ID, nil
}
