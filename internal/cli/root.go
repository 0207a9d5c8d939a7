package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"localsearch/config"
	"localsearch/internal/logger"
)

var (
	cfgFile   string
	cfg       *config.Config
	indexPath string
)

var rootCmd = &cobra.Command{
	Use:   "localsearch",
	Short: "Offline full-text search over your documents",
	Long: `localsearch indexes the files under your configured document
directories and answers free-text queries by tf-idf ranking. Everything runs
locally: the index is a single file in your cache directory and no network
access is ever made.

Example usage:
  localsearch index                 # rebuild the index
  localsearch query -q "tax return" # search it
  localsearch open /path/to/doc.md  # open a result`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if cfgFile == "" {
			cfgFile, err = config.DefaultConfigPath()
			if err != nil {
				return fmt.Errorf("failed to locate config directory: %w", err)
			}
		}
		cfg, err = config.LoadOrCreate(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger.Setup(cfg.Logging.Level)

		indexPath, err = config.DefaultIndexPath()
		if err != nil {
			return fmt.Errorf("failed to locate cache directory: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the OS config directory)")
}
