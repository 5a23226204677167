package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLicenseCommand creates the license command group.
func NewLicenseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "license",
		Short: "License operations",
	}
	cmd.AddCommand(newLicenseCheckCommand(rootOpts))
	return cmd
}

type licenseResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

func newLicenseCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [key]",
		Short: "Validate a license key against the license server",
		Long: `Validate a license key against the license server. Without an
argument the configured license_key is checked. Verdicts are cached
for an hour; a server outage reports invalid but is retried on the
next check.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) == 1 {
				key = args[0]
			}
			return runLicenseCheck(cmd, rootOpts, key)
		},
	}
	return cmd
}

func runLicenseCheck(cmd *cobra.Command, opts *RootOptions, key string) error {
	f := newFormatter(cmd, opts)

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

	v := e.CheckLicense(cmd.Context(), key)
	res := licenseResult{Valid: v.Valid, Message: v.Message}

	status := "invalid"
	if v.Valid {
		status = "valid"
	}
	text := fmt.Sprintf("license %s: %s", status, v.Message)
	if err := f.Success(res, text); err != nil {
		return err
	}

	// An invalid verdict is a failed check even though the command ran.
	if !v.Valid {
		return NewExitError(ExitFailure, "license invalid")
	}
	return nil
}
