package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/creatorpulse/earnings-cli/internal/engine"
	"github.com/creatorpulse/earnings-cli/internal/rates"
)

var (
	estPlatform   string
	estFollowers  float64
	estEngagement float64
	estViews      float64
	estFrequency  float64
	estNiche      string
	estLocation   string
	estEnterprise bool
	estSave       bool
	estJSON       bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate monthly earnings for a single creator profile",
	Long: `Estimates per-channel monthly earnings for one creator profile.

Examples:
  # Basic TikTok estimate
  earnings-cli estimate --platform tiktok --followers 100000 --engagement 4.5

  # Full enterprise analysis with risk and predictions, saved to history
  earnings-cli estimate --platform youtube --followers 250000 --engagement 5 \
    --niche tech --location us --enterprise --save`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		raw := engine.RawInput{
			Followers:      &estFollowers,
			EngagementRate: &estEngagement,
			Niche:          estNiche,
			Location:       estLocation,
		}
		if cmd.Flags().Changed("views") {
			raw.AverageViews = &estViews
		}
		if cmd.Flags().Changed("frequency") {
			raw.PostFrequency = &estFrequency
		}

		svc, err := newService()
		if err != nil {
			return err
		}

		if estEnterprise {
			result, err := svc.EstimateEnterprise(ctx, raw, estPlatform)
			if err != nil {
				return eris.Wrap(err, "estimate")
			}
			if err := saveIfRequested(cmd, raw, result.Calculation); err != nil {
				return err
			}
			if estJSON {
				return printJSON(result)
			}
			printCalculation(result.Calculation)
			fmt.Printf("\nRisk:        %s (score %.2f)\n", result.Risk.OverallRisk, result.Risk.RiskScore)
			fmt.Printf("95%% interval: %s - %s\n", usd(result.Risk.ConfidenceInterval.Lower), usd(result.Risk.ConfidenceInterval.Upper))
			fmt.Printf("Model:       %s predicts %s (confidence %.0f%%)\n",
				result.Prediction.ModelVersion, usd(result.Prediction.PredictedEarnings), result.Prediction.Confidence*100)
			fmt.Printf("Benchmark:   niche average %s/mo, top percentile %s/mo\n",
				usd(result.Benchmarks.AverageEarnings), usd(result.Benchmarks.TopPercentileEarnings))
			return nil
		}

		result, err := svc.Estimate(ctx, raw, estPlatform)
		if err != nil {
			return eris.Wrap(err, "estimate")
		}
		if err := saveIfRequested(cmd, raw, result); err != nil {
			return err
		}
		if estJSON {
			return printJSON(result)
		}
		printCalculation(result)
		return nil
	},
}

func init() {
	estimateCmd.Flags().StringVar(&estPlatform, "platform", "", "platform: tiktok, instagram or youtube (required)")
	estimateCmd.Flags().Float64Var(&estFollowers, "followers", 0, "follower or subscriber count (required)")
	estimateCmd.Flags().Float64Var(&estEngagement, "engagement", 0, "engagement rate percent (required)")
	estimateCmd.Flags().Float64Var(&estViews, "views", 0, "average views per post (default: 30% of followers)")
	estimateCmd.Flags().Float64Var(&estFrequency, "frequency", 0, "posts per week (default: 3)")
	estimateCmd.Flags().StringVar(&estNiche, "niche", "", "content niche (default: lifestyle)")
	estimateCmd.Flags().StringVar(&estLocation, "location", "", "audience location (default: other)")
	estimateCmd.Flags().BoolVar(&estEnterprise, "enterprise", false, "include risk assessment, prediction and benchmarks")
	estimateCmd.Flags().BoolVar(&estSave, "save", false, "save the estimate to history")
	estimateCmd.Flags().BoolVar(&estJSON, "json", false, "print the raw JSON result")
	_ = estimateCmd.MarkFlagRequired("platform")
	_ = estimateCmd.MarkFlagRequired("followers")
	_ = estimateCmd.MarkFlagRequired("engagement")
	rootCmd.AddCommand(estimateCmd)
}

func saveIfRequested(cmd *cobra.Command, raw engine.RawInput, result *engine.CalculationResult) error {
	if !estSave {
		return nil
	}
	ctx := cmd.Context()

	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return eris.Wrap(err, "migrate store")
	}

	in, err := engine.Normalize(raw)
	if err != nil {
		return err
	}
	rec, err := st.SaveEstimate(ctx, rates.Platform(estPlatform), in, result)
	if err != nil {
		return eris.Wrap(err, "save estimate")
	}
	zap.L().Info("estimate saved", zap.String("id", rec.ID))
	return nil
}

func printCalculation(result *engine.CalculationResult) {
	fmt.Printf("Platform:    %s\n", result.Platform)
	fmt.Printf("Monthly:     %s\n", usd(result.MonthlyEarnings))
	fmt.Printf("Yearly:      %s\n", usd(result.YearlyEarnings))
	fmt.Printf("Per post:    %s\n", usd(result.PerPostEarnings))
	fmt.Printf("Per 1k views: %s\n", usd(result.PerThousandViewsEarnings))

	fmt.Println("\nBreakdown:")
	for _, name := range []string{
		engine.ChannelCreatorFund, engine.ChannelAdRevenue, engine.ChannelLiveGifts,
		engine.ChannelMemberships, engine.ChannelSuperChat, engine.ChannelBrandPartnerships,
		engine.ChannelAffiliate, engine.ChannelMerchandise, engine.ChannelOther,
	} {
		if v, ok := result.Breakdown[name]; ok {
			fmt.Printf("  %-18s %s\n", name, usd(v))
		}
	}

	if len(result.Tips) > 0 {
		fmt.Println("\nTips:")
		for _, tip := range result.Tips {
			fmt.Printf("  - %s\n", tip)
		}
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
