package commands

import (
	"errors"
	"fmt"

	"github.com/maeartistry/internal/config"
	"github.com/spf13/cobra"
)

var errMissingEnv = errors.New("missing environment variables")

func newEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Validate the environment variables for the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "store driver: %s\n", cfg.StoreDriver)

			missing := config.Validate(cfg)
			if len(missing) == 0 {
				fmt.Fprintln(out, "all required variables are set")
				return nil
			}
			for _, key := range missing {
				fmt.Fprintf(out, "missing: %s\n", key)
			}
			return fmt.Errorf("%w: %d", errMissingEnv, len(missing))
		},
	}
}
