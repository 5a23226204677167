package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cnsrgl/stock-gestion-codeon/internal/catalog"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the change log, newest first",
		Long: `Show the change log, newest first. Rows written by the same bulk
operation share a batch id.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 50, "maximum rows to show (0 = all)")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	f := newFormatter(cmd, opts.RootOptions)

	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	changes, err := s.RecentChanges(cmd.Context(), opts.Limit)
	if err != nil {
		return f.Fail(err)
	}

	return f.Success(changes, renderHistory(changes))
}

func renderHistory(changes []catalog.Change) string {
	if len(changes) == 0 {
		return "no changes recorded"
	}

	var b strings.Builder
	for i, c := range changes {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s  product %d  %s: %q -> %q",
			c.ChangedAt.Format(time.RFC3339), c.ProductID, c.Field, c.OldValue, c.NewValue)
		if c.BatchID != "" {
			fmt.Fprintf(&b, "  [batch %s]", c.BatchID)
		}
	}
	return b.String()
}
