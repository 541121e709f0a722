// ABOUTME: Discover subcommand resolving feed URLs for arbitrary sites
// ABOUTME: Helps users populate sources.yaml without hunting for feed links

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"newsdigest/core/discover"
	standardhttp "newsdigest/infrastructure/http/standard"
	logruslogger "newsdigest/infrastructure/logger/logrus"
)

func newDiscoverCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "discover <site-url> [site-url...]",
		Short: "Find the feed URL for one or more websites",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logruslogger.New(os.Stderr, flags.verbose)
			svc := discover.NewService(standardhttp.NewClient(10*time.Second), logger)

			results := svc.Discover(cmd.Context(), args)

			failures := 0
			for _, r := range results {
				if r.Err != nil {
					failures++
					fmt.Fprintf(cmd.OutOrStdout(), "%s: no feed found (%v)\n", r.SiteURL, r.Err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", r.SiteURL, r.FeedURL)
			}

			if failures == len(results) {
				return fmt.Errorf("no feeds found for any of the %d sites", len(results))
			}
			return nil
		},
	}
}
