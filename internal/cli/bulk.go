package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cnsrgl/stock-gestion-codeon/internal/catalog"
	"github.com/cnsrgl/stock-gestion-codeon/internal/engine"
)

// BulkOptions holds flags for the bulk command.
type BulkOptions struct {
	*RootOptions
	IDs   []int64
	Field string
	Op    string
	Value float64
}

// NewBulkCommand creates the bulk command.
func NewBulkCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BulkOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "bulk --ids <id,...> --field <field> --op <operation> --value <n>",
		Short: "Apply one arithmetic operation across many products",
		Long: `Apply one arithmetic operation across many products.

Bulk-editable fields: stock_quantity, regular_price, sale_price.
Operations: set, increase, decrease, increase_percent, decrease_percent.

Per-item failures (missing products, variable-kind parents) skip the
item and continue; the summary lists every skipped id.

Example:
  stockctl bulk --ids 1,2,3 --field regular_price --op increase_percent --value 10`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBulk(cmd, opts)
		},
	}

	cmd.Flags().Int64SliceVar(&opts.IDs, "ids", nil, "product ids to edit")
	cmd.Flags().StringVar(&opts.Field, "field", "", "field to edit")
	cmd.Flags().StringVar(&opts.Op, "op", "set", "operation to apply")
	cmd.Flags().Float64Var(&opts.Value, "value", 0, "operand value")
	cmd.MarkFlagRequired("field")

	return cmd
}

func runBulk(cmd *cobra.Command, opts *BulkOptions) error {
	f := newFormatter(cmd, opts.RootOptions)

	field, ok := catalog.ParseField(opts.Field)
	if !ok {
		return f.Fail(&engine.UnsupportedFieldError{Field: opts.Field})
	}
	op, ok := catalog.ParseOperation(opts.Op)
	if !ok {
		return f.FailUsage(fmt.Errorf("unknown operation %q", opts.Op))
	}

	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	settings, err := loadSettings(opts.RootOptions)
	if err != nil {
		return err
	}
	e, err := buildEngine(cmd.Context(), s, settings)
	if err != nil {
		return err
	}

	res, err := e.BulkApply(cmd.Context(), opts.IDs, field, op, opts.Value)
	if err != nil {
		return f.Fail(err)
	}

	return f.Success(res, renderBulk(res))
}

func renderBulk(res *engine.BulkResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Batch %s: %d updated, %d skipped", res.BatchID, res.UpdatedCount, len(res.SkippedIDs))
	if len(res.SkippedIDs) > 0 {
		ids := make([]string, len(res.SkippedIDs))
		for i, id := range res.SkippedIDs {
			ids[i] = fmt.Sprintf("%d", id)
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(ids, ", "))
	}
	if res.LimitReached {
		b.WriteString("\nWarning: free change allowance exhausted; further edits need a valid license")
	}
	return b.String()
}
