package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vietddude/godad/internal/core/domain"
)

var (
	articlesPage     int
	articlesSize     int
	articlesKeyword  string
	articlesCategory int64
)

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "List published articles",
	Run:   runArticles,
}

func init() {
	articlesCmd.Flags().IntVar(&articlesPage, "page", 1, "page number")
	articlesCmd.Flags().IntVar(&articlesSize, "size", 10, "page size")
	articlesCmd.Flags().StringVar(&articlesKeyword, "keyword", "", "search keyword")
	articlesCmd.Flags().Int64Var(&articlesCategory, "category", 0, "filter by category id")
	rootCmd.AddCommand(articlesCmd)
}

func runArticles(cmd *cobra.Command, args []string) {
	app, _ := setup()
	defer func() { _ = app.Close() }()

	list, err := app.Articles.List(context.Background(), domain.ArticleListParams{
		Page:       articlesPage,
		Size:       articlesSize,
		Keyword:    articlesKeyword,
		CategoryID: articlesCategory,
	})
	if err != nil {
		slog.Error("Failed to list articles", "error", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tVIEWS\tLIKES\tCOMMENTS")
	for _, a := range list.Items {
		author := ""
		if a.Author != nil {
			author = a.Author.Nickname
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\n",
			a.ID, a.Title, author, a.ViewCount, a.LikeCount, a.CommentCount)
	}
	_ = w.Flush()
	fmt.Printf("page %d/%d, %d total\n", list.Page, list.TotalPages, list.Total)
}
