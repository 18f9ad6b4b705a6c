package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vukan322/ghrecap/internal/recap"
	"github.com/vukan322/ghrecap/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the recap HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		service := recap.NewService(cfg)
		return server.New(cfg.Server.Addr, service).Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
