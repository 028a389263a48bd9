package posts

import (
	"context"

	"github.com/crucial707/bloglet/cmd/cli/output"
	"github.com/crucial707/bloglet/cmd/cli/root"
	"github.com/crucial707/bloglet/internal/config"
	"github.com/crucial707/bloglet/internal/db"
	"github.com/crucial707/bloglet/internal/repo"
	"github.com/spf13/cobra"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "Inspect posts",
	}

	postsCmd.AddCommand(listPostsCmd())
	root.GetRoot().AddCommand(postsCmd)
}

// ==========================
// LIST
// ==========================
func listPostsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			database, err := db.Connect(
				cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass,
				cfg.DBMaxOpenConns, cfg.DBMaxIdleConns,
			)
			if err != nil {
				return err
			}
			defer database.Close()

			posts, err := repo.NewPostRepo(database).ListWithAuthors(context.Background())
			if err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(posts))
			for _, p := range posts {
				rows = append(rows, []interface{}{
					p.ID, p.Title, p.Username, p.Created.Format("2006-01-02 15:04"),
				})
			}
			output.RenderTable([]string{"ID", "Title", "Author", "Created"}, rows)
			return nil
		},
	}
}
