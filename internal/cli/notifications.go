package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	notifPage  int
	notifLimit int
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "List notifications for the logged-in user",
	Run:   runNotifications,
}

func init() {
	notificationsCmd.Flags().IntVar(&notifPage, "page", 1, "page number")
	notificationsCmd.Flags().IntVar(&notifLimit, "limit", 20, "page size")
	rootCmd.AddCommand(notificationsCmd)
}

func runNotifications(cmd *cobra.Command, args []string) {
	app, _ := setup()
	defer func() { _ = app.Close() }()

	ctx := context.Background()

	stats, err := app.Notifications.Stats(ctx)
	if err != nil {
		slog.Error("Failed to load notification stats", "error", err)
		os.Exit(1)
	}

	list, err := app.Notifications.List(ctx, notifPage, notifLimit)
	if err != nil {
		slog.Error("Failed to list notifications", "error", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "ID\tTYPE\tFROM\tREAD\tMESSAGE")
	for _, n := range list.Items {
		read := " "
		if n.IsRead {
			read = "x"
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			n.ID, n.Type, n.ActorNickname, read, n.Message)
	}
	_ = w.Flush()
	fmt.Printf("page %d/%d, %d unread of %d\n",
		list.Page, list.TotalPages, stats.UnreadCount, stats.TotalCount)
}
