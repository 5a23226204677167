package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cnsrgl/stock-gestion-codeon/internal/catalog"
	"github.com/cnsrgl/stock-gestion-codeon/internal/engine"
)

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <product-id> <field> <value>",
		Short: "Update one field of one product",
		Long: `Update one field of one product.

Editable fields: stock_quantity, stock_status, manage_stock,
regular_price, sale_price, name.

Examples:
  stockctl update 42 stock_quantity 15
  stockctl update 42 stock_status outofstock
  stockctl update 108 name "Linen Shirt - Blue"`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, rootOpts, args)
		},
	}
	return cmd
}

func runUpdate(cmd *cobra.Command, opts *RootOptions, args []string) error {
	f := newFormatter(cmd, opts)

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return f.FailUsage(fmt.Errorf("invalid product id %q", args[0]))
	}
	field, ok := catalog.ParseField(args[1])
	if !ok {
		return f.Fail(&engine.UnsupportedFieldError{Field: args[1]})
	}

	s, err := openStore(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}
	e, err := buildEngine(cmd.Context(), s, settings)
	if err != nil {
		return err
	}

	res, err := e.UpdateField(cmd.Context(), id, field, args[2])
	if err != nil {
		return f.Fail(err)
	}

	return f.Success(res, renderUpdate(res))
}

func renderUpdate(res *engine.UpdateResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Updated product %d (%s)\n", res.ProductID, res.Name)
	fmt.Fprintf(&b, "  %s = %s\n", res.Field, updateFieldText(res))
	fmt.Fprintf(&b, "  tier color: %s", res.Color)
	if res.Parent != nil {
		fmt.Fprintf(&b, "\n  parent %d: total stock %d, total sales %d, color %s",
			res.Parent.ParentID, res.Parent.TotalStock, res.Parent.TotalSales, res.Parent.Color)
	}
	return b.String()
}

func updateFieldText(res *engine.UpdateResult) string {
	switch res.Field {
	case catalog.FieldStockQuantity:
		if res.StockQuantity == nil {
			return ""
		}
		return strconv.Itoa(*res.StockQuantity)
	case catalog.FieldStockStatus:
		return string(res.StockStatus)
	case catalog.FieldManageStock:
		if res.ManageStock {
			return "yes"
		}
		return "no"
	case catalog.FieldRegularPrice:
		return strconv.FormatFloat(res.RegularPrice, 'f', -1, 64)
	case catalog.FieldSalePrice:
		return strconv.FormatFloat(res.SalePrice, 'f', -1, 64)
	case catalog.FieldName:
		return res.Name
	}
	return ""
}
