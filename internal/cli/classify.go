package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cnsrgl/stock-gestion-codeon/internal/engine"
)

// NewClassifyCommand creates the classify command.
func NewClassifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <quantity>",
		Short: "Show the tier color for a stock quantity",
		Long: `Show the tier color a stock quantity falls into under the
configured thresholds. Useful for checking threshold settings without
touching any product.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, rootOpts, args[0])
		},
	}
	return cmd
}

type classifyResult struct {
	Quantity int    `json:"quantity"`
	Color    string `json:"color"`
}

func runClassify(cmd *cobra.Command, opts *RootOptions, arg string) error {
	f := newFormatter(cmd, opts)

	qty, err := strconv.Atoi(arg)
	if err != nil {
		return f.FailUsage(fmt.Errorf("invalid quantity %q", arg))
	}

	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}

	// Classification is pure; no store or gate involved.
	color := engine.Classify(qty, settings.Thresholds(), settings.Colors())
	res := classifyResult{Quantity: qty, Color: color}
	return f.Success(res, fmt.Sprintf("quantity %d -> %s", qty, color))
}
