package main

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/creatorpulse/earnings-cli/internal/store"
)

var (
	histID       string
	histPlatform string
	histNiche    string
	histLimit    int
	histPrune    bool
	histJSON     bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, inspect or prune saved estimates",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("history"); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		if histPrune {
			cutoff := time.Now().AddDate(0, 0, -cfg.History.RetentionDays)
			n, err := st.DeleteOlderThan(ctx, cutoff)
			if err != nil {
				return eris.Wrap(err, "prune history")
			}
			zap.L().Info("history pruned",
				zap.Int("deleted", n),
				zap.Int("retention_days", cfg.History.RetentionDays),
			)
			return nil
		}

		if histID != "" {
			rec, err := st.GetEstimate(ctx, histID)
			if err != nil {
				return eris.Wrap(err, "get estimate")
			}
			return printJSON(rec)
		}

		records, err := st.ListEstimates(ctx, store.Filter{
			Platform: histPlatform,
			Niche:    histNiche,
			Limit:    histLimit,
		})
		if err != nil {
			return eris.Wrap(err, "list estimates")
		}

		if histJSON {
			return printJSON(records)
		}
		if len(records) == 0 {
			fmt.Println("no saved estimates")
			return nil
		}
		for _, r := range records {
			fmt.Printf("%s  %-10s %-14s %12s/mo  %s\n",
				r.CreatedAt.Format("2006-01-02 15:04"),
				r.Platform, r.Input.Niche, usd(r.Result.MonthlyEarnings), r.ID)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&histID, "id", "", "show one estimate by id")
	historyCmd.Flags().StringVar(&histPlatform, "platform", "", "filter by platform")
	historyCmd.Flags().StringVar(&histNiche, "niche", "", "filter by niche")
	historyCmd.Flags().IntVar(&histLimit, "limit", 50, "max records to list")
	historyCmd.Flags().BoolVar(&histPrune, "prune", false, "delete records older than the retention window")
	historyCmd.Flags().BoolVar(&histJSON, "json", false, "print the raw JSON records")
	rootCmd.AddCommand(historyCmd)
}
