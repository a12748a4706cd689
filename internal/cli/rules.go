package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/stylec/internal/config"
	"github.com/roach88/stylec/internal/ir"
	"github.com/roach88/stylec/internal/queryir"
	"github.com/roach88/stylec/internal/store"
)

// RulesOptions holds flags for the rules command.
type RulesOptions struct {
	*RootOptions
	DB            string   // registry database path
	RunID         string   // only rules first registered by this run
	CompilationID string   // rules of one compilation, in class-name order
	Property      string   // property name or alias
	Value         string   // rendered value
	Conditions    []string // condition keys or prefixes, all required
	Base          bool     // only rules without conditions
	Limit         int
}

// NewRulesCommand creates the rules command.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RulesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "rules --db <path>",
		Short: "List the atomic rules recorded in a registry",
		Long: `List every atomic rule recorded by compile --db, in registration
order. With --run, only the rules first registered by that run. With
--compilation, the rules of one recorded compilation in the order of
its class name.

Filters combine: --property takes a name or alias of the preset,
--condition a condition key (_hover, sm, "&:focus > span") or a
rendered prefix, and may be repeated.

Examples:
  stylec rules --db styles.db
  stylec rules --db styles.db --property bg --condition _hover
  stylec rules --db styles.db --base --limit 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "registry database path (required)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "only rules registered by this run")
	cmd.Flags().StringVar(&opts.CompilationID, "compilation", "", "rules of this compilation, in class-name order")
	cmd.Flags().StringVar(&opts.Property, "property", "", "only rules of this property")
	cmd.Flags().StringVar(&opts.Value, "value", "", "only rules with this value")
	cmd.Flags().StringArrayVar(&opts.Conditions, "condition", nil, "only rules under this condition (repeatable)")
	cmd.Flags().BoolVar(&opts.Base, "base", false, "only rules without conditions")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "list at most this many rules")

	for _, f := range []string{"run", "property", "value", "condition", "base", "limit"} {
		cmd.MarkFlagsMutuallyExclusive("compilation", f)
	}

	return cmd
}

func runRules(opts *RulesOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	dbPath := opts.Settings.DB
	if dbPath == "" {
		return formatter.Fail(ExitCommandError, ErrCodeNoInput, "--db is required", nil)
	}
	if _, err := os.Stat(dbPath); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("database not found: %s", dbPath), nil)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.RunID != "" {
		if _, err := st.ReadRun(ctx, opts.RunID); errors.Is(err, store.ErrNotFound) {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("run not found: %s", opts.RunID), nil)
		} else if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
		}
	}

	var rules []store.Rule
	if opts.CompilationID != "" {
		comp, err := st.ReadCompilation(ctx, opts.CompilationID)
		if errors.Is(err, store.ErrNotFound) {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("compilation not found: %s", opts.CompilationID), nil)
		}
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
		}
		rules = comp.Rules
	} else {
		query := opts.query()
		if err := queryir.Validate(query); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
		}
		if rules, err = st.QueryRules(ctx, query); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
		}
	}
	opts.Log.Debug("rules read", zap.Int("rules", len(rules)))

	if formatter.Format == "json" {
		return formatter.JSON(CLIResponse{Status: "ok", Data: rules, RunID: opts.RunID})
	}

	w := formatter.Writer
	if len(rules) == 0 {
		fmt.Fprintln(w, "(no rules)")
		return nil
	}
	for _, r := range rules {
		conditions := "-"
		if len(r.Decl.Conditions) > 0 {
			conditions = strings.Join(r.Decl.Conditions, " ")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s: %s\n", r.Seq, r.ClassName, conditions, r.Decl.Property, r.Decl.Value)
	}
	return nil
}

// query builds the registry query from the filter flags. Property and
// condition keys resolve through the preset tables.
func (o *RulesOptions) query() queryir.Select {
	var preds []queryir.Predicate
	if o.RunID != "" {
		preds = append(preds, queryir.Equals{Field: queryir.FieldRun, Value: ir.String(o.RunID)})
	}
	if o.Property != "" {
		prop, _ := o.Tables.Property(o.Property)
		preds = append(preds, queryir.Equals{Field: queryir.FieldProperty, Value: ir.String(prop.Name)})
	}
	if o.Value != "" {
		preds = append(preds, queryir.Equals{Field: queryir.FieldValue, Value: ir.String(o.Value)})
	}
	for _, key := range o.Conditions {
		cond, ok := o.Tables.Condition(key)
		switch {
		case !ok:
			prefix := key
			if arb := o.Tables.Arbitrary(key); arb.Kind.Verbatim() && !strings.HasPrefix(key, "[") {
				prefix = arb.Prefix
			}
			preds = append(preds, queryir.HasCondition{Condition: prefix})
		case cond.Kind == config.KindBase:
			preds = append(preds, queryir.Unconditioned{})
		default:
			preds = append(preds, queryir.HasCondition{Condition: cond.Prefix})
		}
	}
	if o.Base {
		preds = append(preds, queryir.Unconditioned{})
	}
	return queryir.Select{Filter: queryir.Where(preds...), Limit: o.Limit}
}
