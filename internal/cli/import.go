package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cnsrgl/stock-gestion-codeon/internal/catalog"
)

// importedProduct is the YAML shape of one product in an import file.
type importedProduct struct {
	ID            int64   `yaml:"id"`
	Name          string  `yaml:"name"`
	Kind          string  `yaml:"kind"`
	ParentID      int64   `yaml:"parent_id"`
	StockQuantity *int    `yaml:"stock_quantity"`
	StockStatus   string  `yaml:"stock_status"`
	ManageStock   bool    `yaml:"manage_stock"`
	RegularPrice  float64 `yaml:"regular_price"`
	SalePrice     float64 `yaml:"sale_price"`
	TotalSales    int     `yaml:"total_sales"`
}

type importFile struct {
	Products []importedProduct `yaml:"products"`
}

type importResult struct {
	ImportedCount int `json:"imported_count"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import products from a YAML file",
		Long: `Import products from a YAML file into the local catalog. Existing
ids are overwritten; the whole file applies in one transaction.

File shape:
  products:
    - id: 42
      name: Widget
      kind: simple
      stock_quantity: 10
      stock_status: instock
      manage_stock: true
      regular_price: 19.9`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, rootOpts, args[0])
		},
	}
	return cmd
}

func runImport(cmd *cobra.Command, opts *RootOptions, path string) error {
	f := newFormatter(cmd, opts)

	data, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "read import file", err)
	}

	var file importFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return WrapExitError(ExitCommandError, "parse import file", err)
	}

	products := make([]*catalog.Product, 0, len(file.Products))
	for _, ip := range file.Products {
		p, err := convertImported(ip)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid import file", err)
		}
		products = append(products, p)
	}

	s, err := openStore(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.ImportProducts(cmd.Context(), products); err != nil {
		return f.Fail(err)
	}

	res := importResult{ImportedCount: len(products)}
	return f.Success(res, fmt.Sprintf("imported %d products", len(products)))
}

func convertImported(ip importedProduct) (*catalog.Product, error) {
	if ip.ID <= 0 {
		return nil, fmt.Errorf("product id %d: must be positive", ip.ID)
	}

	kind := catalog.Kind(ip.Kind)
	if ip.Kind == "" {
		kind = catalog.KindSimple
	}

	status := catalog.StatusInStock
	if ip.StockStatus != "" {
		parsed, ok := catalog.ParseStockStatus(ip.StockStatus)
		if !ok {
			return nil, fmt.Errorf("product %d: unknown stock_status %q", ip.ID, ip.StockStatus)
		}
		status = parsed
	}

	return &catalog.Product{
		ID:            ip.ID,
		Name:          ip.Name,
		Kind:          kind,
		ParentID:      ip.ParentID,
		StockQuantity: ip.StockQuantity,
		StockStatus:   status,
		ManageStock:   ip.ManageStock,
		RegularPrice:  ip.RegularPrice,
		SalePrice:     ip.SalePrice,
		TotalSales:    ip.TotalSales,
	}, nil
}
