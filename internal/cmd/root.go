package cmd

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vukan322/ghrecap/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "ghrecap",
	Short: "GitHub year-in-review statistics and archetypes",
	Long:  "ghrecap pulls contribution statistics from the GitHub API, derives temporal metrics, and classifies the account into a narrative archetype.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to ghrecap.yaml")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "enable debug logging")

	cobra.OnInitialize(func() {
		if debug, _ := rootCmd.PersistentFlags().GetBool("debug"); debug {
			logrus.SetLevel(logrus.DebugLevel)
		}
	})
}

func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	return config.Load(cfgFile)
}
