package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show client configuration and session state",
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	app, cfg := setup()
	defer func() { _ = app.Close() }()

	user := app.Session.Restore(context.Background())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "SETTING\tVALUE")
	_, _ = fmt.Fprintf(w, "base_url\t%s\n", cfg.API.BaseURL)
	_, _ = fmt.Fprintf(w, "api_prefix\t%s\n", cfg.API.Prefix)
	_, _ = fmt.Fprintf(w, "timeout\t%s\n", cfg.API.Timeout)
	_, _ = fmt.Fprintf(w, "cache_backend\t%s\n", cfg.Cache.Backend)
	if user != nil {
		_, _ = fmt.Fprintf(w, "cached_user\t%s (unvalidated)\n", user.Username)
	} else {
		_, _ = fmt.Fprintf(w, "cached_user\tnone\n")
	}
	_ = w.Flush()
}
