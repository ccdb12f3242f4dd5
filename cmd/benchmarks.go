package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	benchPlatform string
	benchNiche    string
	benchJSON     bool
)

var benchmarksCmd = &cobra.Command{
	Use:   "benchmarks",
	Short: "Show industry benchmark figures for a platform and niche",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		b, err := svc.IndustryBenchmarks(cmd.Context(), benchPlatform, benchNiche)
		if err != nil {
			return eris.Wrap(err, "benchmarks")
		}

		if benchJSON {
			return printJSON(b)
		}
		fmt.Printf("Platform:        %s\n", benchPlatform)
		fmt.Printf("Niche:           %s\n", benchNiche)
		fmt.Printf("Average:         %s/mo\n", usd(b.AverageEarnings))
		fmt.Printf("Top percentile:  %s/mo\n", usd(b.TopPercentileEarnings))
		fmt.Printf("Avg engagement:  %.1f%%\n", b.AverageEngagement)
		fmt.Printf("Growth rate:     %.1f%%/mo\n", b.GrowthRate*100)
		return nil
	},
}

func init() {
	benchmarksCmd.Flags().StringVar(&benchPlatform, "platform", "", "platform: tiktok, instagram or youtube (required)")
	benchmarksCmd.Flags().StringVar(&benchNiche, "niche", "lifestyle", "content niche")
	benchmarksCmd.Flags().BoolVar(&benchJSON, "json", false, "print the raw JSON result")
	_ = benchmarksCmd.MarkFlagRequired("platform")
	rootCmd.AddCommand(benchmarksCmd)
}
