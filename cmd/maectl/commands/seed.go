package commands

import (
	"fmt"

	"github.com/maeartistry/internal/service"
	"github.com/maeartistry/internal/sitecontent"
	"github.com/spf13/cobra"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the starter categories, services, posts and portfolio rows",
		Long:  `seed only inserts rows that are missing, so it is safe to run repeatedly.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, repo, _, err := openStore()
			if err != nil {
				return err
			}
			site, err := sitecontent.Load()
			if err != nil {
				return err
			}

			report, err := service.NewSeeder(repo, site).Run(cmd.Context())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "categories: %d created, %d skipped\n", report.CategoriesCreated, report.CategoriesSkipped)
			fmt.Fprintf(out, "services:   %d created, %d skipped\n", report.ServicesCreated, report.ServicesSkipped)
			fmt.Fprintf(out, "posts:      %d created, %d skipped\n", report.PostsCreated, report.PostsSkipped)
			fmt.Fprintf(out, "portfolio:  %d created, %d skipped\n", report.PortfolioCreated, report.PortfolioSkipped)
			return err
		},
	}
}
