// Package commands implements the maectl maintenance CLI.
package commands

import (
	"github.com/maeartistry/internal/config"
	"github.com/maeartistry/internal/store"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the full command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "maectl",
		Short:         "Maintenance tasks for the Mae Makeup Artistry site",
		Long:          `maectl checks the environment, seeds and migrates the store, prepares images and writes the sitemap.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newEnvCommand(),
		newCheckCommand(),
		newSeedCommand(),
		newMigrateCommand(),
		newConvertImagesCommand(),
		newSitemapCommand(),
		newUploadCommand(),
		newHashPasswordCommand(),
	)
	return root
}

// loadConfig reads the dotenv files and the process environment.
func loadConfig() (config.AppConfig, error) {
	if err := config.LoadDotenv(); err != nil {
		return config.AppConfig{}, err
	}
	return config.Load(), nil
}

func openStore() (config.AppConfig, store.Repository, store.Bucket, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, nil, nil, err
	}
	repo, bucket, err := store.Open(cfg)
	return cfg, repo, bucket, err
}
