package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cnsrgl/stock-gestion-codeon/internal/catalog"
	"github.com/cnsrgl/stock-gestion-codeon/internal/engine"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Parent int64
}

// listRow is one product in the listing, with its computed tier color.
// Variable products carry their aggregate instead of their own stock.
type listRow struct {
	ID            int64                `json:"id"`
	Name          string               `json:"name"`
	Kind          catalog.Kind         `json:"kind"`
	StockQuantity *int                 `json:"stock_quantity"`
	StockStatus   catalog.StockStatus  `json:"stock_status"`
	RegularPrice  float64              `json:"regular_price"`
	SalePrice     float64              `json:"sale_price"`
	Color         string               `json:"color"`
	Rollup        *engine.ParentRollup `json:"rollup,omitempty"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products with their stock tier colors",
		Long: `List products with their stock tier colors, ordered per the
configured default_order and default_order_dir settings.
Variable products show the live aggregate over their variations.
With --parent, lists only that parent's variations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().Int64Var(&opts.Parent, "parent", 0, "list only variations of this parent id")

	return cmd
}

func runList(cmd *cobra.Command, opts *ListOptions) error {
	f := newFormatter(cmd, opts.RootOptions)

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

	ctx := cmd.Context()
	var products []*catalog.Product
	if opts.Parent != 0 {
		products, err = s.VariationsOf(ctx, opts.Parent)
	} else {
		products, err = s.ListProducts(ctx)
	}
	if err != nil {
		return f.Fail(err)
	}

	rows := make([]listRow, 0, len(products))
	for _, p := range products {
		// Variations appear under their parent, not in the top list.
		if opts.Parent == 0 && p.IsVariation() {
			continue
		}

		row := listRow{
			ID:            p.ID,
			Name:          p.Name,
			Kind:          p.Kind,
			StockQuantity: p.StockQuantity,
			StockStatus:   p.StockStatus,
			RegularPrice:  p.RegularPrice,
			SalePrice:     p.SalePrice,
			Color:         e.Classify(p.QuantityOrZero()),
		}

		if p.Kind == catalog.KindVariable {
			rollup, err := e.Rollup(ctx, p.ID)
			if err != nil {
				return f.Fail(err)
			}
			row.Rollup = rollup
			row.Color = rollup.Color
		}

		rows = append(rows, row)
	}

	// Variations stay in id order; the top-level listing honors the
	// configured ordering.
	if opts.Parent == 0 {
		sortRows(rows, settings.DefaultOrder, settings.DefaultOrderDir)
	}

	return f.Success(rows, renderList(rows))
}

func sortRows(rows []listRow, order, dir string) {
	less := func(a, b listRow) bool {
		switch order {
		case "stock_quantity":
			return rowQuantity(a) < rowQuantity(b)
		case "id":
			return a.ID < b.ID
		default: // name
			an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
			if an != bn {
				return an < bn
			}
			return a.ID < b.ID
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if dir == "desc" {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

// rowQuantity is the quantity a row sorts by: the aggregate for
// variable parents, 0 for unmanaged stock.
func rowQuantity(r listRow) int {
	if r.Rollup != nil {
		return r.Rollup.TotalStock
	}
	if r.StockQuantity != nil {
		return *r.StockQuantity
	}
	return 0
}

func renderList(rows []listRow) string {
	if len(rows) == 0 {
		return "no products"
	}

	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		qty := "-"
		if r.Rollup != nil {
			qty = fmt.Sprintf("%d (total)", r.Rollup.TotalStock)
		} else if r.StockQuantity != nil {
			qty = fmt.Sprintf("%d", *r.StockQuantity)
		}
		fmt.Fprintf(&b, "%6d  %-12s %-30s stock=%-12s %s", r.ID, r.Kind, r.Name, qty, r.Color)
	}
	return b.String()
}
