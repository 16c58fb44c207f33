package commands

import (
	"fmt"
	"time"

	"github.com/maeartistry/internal/service"
	"github.com/maeartistry/internal/sitemap"
	"github.com/spf13/cobra"
)

func newSitemapCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Write sitemap.xml and robots.txt for static hosting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, repo, _, err := openStore()
			if err != nil {
				return err
			}
			posts, err := service.NewContentService(repo).ListBlogPosts(cmd.Context(), 0)
			if err != nil {
				return fmt.Errorf("load posts: %w", err)
			}

			entries := make([]sitemap.Post, 0, len(posts))
			for _, post := range posts {
				entries = append(entries, sitemap.Post{Slug: post.Slug, UpdatedAt: post.PublishedAt})
			}
			routes := sitemap.Routes(entries, time.Now().UTC())
			if err := sitemap.WriteFiles(out, cfg.SiteBaseURL, routes); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d urls to %s\n", len(routes), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "web/static", "output directory")
	return cmd
}
