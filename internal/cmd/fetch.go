package cmd

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vukan322/ghrecap/internal/recap"
	"github.com/vukan322/ghrecap/internal/render"
)

var (
	fetchUser      string
	fetchYear      int
	fetchToken     string
	fetchNoCompare bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch one recap and print a terminal report",
	RunE: func(cmd *cobra.Command, args []string) error {
		username := strings.TrimSpace(fetchUser)
		if username == "" {
			return errors.New("missing required flag: --user")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		resp, err := recap.NewService(cfg).GetRecap(ctx, recap.Request{
			Username:          username,
			Year:              fetchYear,
			Token:             fetchToken,
			IncludeComparison: !fetchNoCompare,
		})
		if err != nil {
			return err
		}

		out, err := render.Report(resp)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchUser, "user", "", "GitHub username")
	fetchCmd.Flags().IntVar(&fetchYear, "year", time.Now().Year(), "calendar year, 0 for all time")
	fetchCmd.Flags().StringVar(&fetchToken, "token", "", "GitHub token (falls back to GITHUB_TOKEN)")
	fetchCmd.Flags().BoolVar(&fetchNoCompare, "no-compare", false, "skip the year-over-year comparison")
	rootCmd.AddCommand(fetchCmd)
}
