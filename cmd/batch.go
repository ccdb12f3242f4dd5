package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/creatorpulse/earnings-cli/internal/engine"
	"github.com/creatorpulse/earnings-cli/internal/estimator"
)

var (
	batchCSV         string
	batchPlatform    string
	batchLimit       int
	batchConcurrency int
	batchEnterprise  bool
	batchOutput      string
)

// batchProfile is one parsed CSV row. The platform column overrides the
// --platform flag when present.
type batchProfile struct {
	Row      int             `json:"row"`
	Platform string          `json:"platform"`
	Input    engine.RawInput `json:"input"`
}

// batchRow is one output entry; exactly one of Result/Enterprise/Error is set.
type batchRow struct {
	Row        int    `json:"row"`
	Platform   string `json:"platform"`
	Result     any    `json:"result,omitempty"`
	Enterprise any    `json:"enterprise,omitempty"`
	Error      string `json:"error,omitempty"`
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Estimate earnings for many profiles from a CSV file",
	Long: `Reads creator profiles from a CSV and estimates each one concurrently.

Expected columns (header row required, order free):
  followers, engagementRate, averageViews, postFrequency, niche, location, platform

averageViews, postFrequency, niche, location and platform are optional;
platform falls back to --platform.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		profiles, err := parseProfilesCSV(batchCSV, batchPlatform)
		if err != nil {
			return eris.Wrap(err, "batch: parse csv")
		}
		zap.L().Info("parsed csv", zap.Int("profiles", len(profiles)))

		if batchLimit > 0 && len(profiles) > batchLimit {
			profiles = profiles[:batchLimit]
		}

		svc, err := newService()
		if err != nil {
			return err
		}

		concurrency := batchConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Batch.MaxConcurrentProfiles
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)

		var mu sync.Mutex
		rows := make([]batchRow, 0, len(profiles))
		var succeeded, failed atomic.Int64

		for _, profile := range profiles {
			profile := profile
			g.Go(func() error {
				row := estimateProfile(gctx, svc, profile)
				if row.Error != "" {
					failed.Add(1)
					zap.L().Error("batch: profile failed",
						zap.Int("row", profile.Row),
						zap.String("error", row.Error),
					)
				} else {
					succeeded.Add(1)
				}
				mu.Lock()
				rows = append(rows, row)
				mu.Unlock()
				return nil // don't abort batch on individual failure
			})
		}

		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "batch processing")
		}

		zap.L().Info("batch complete",
			zap.Int64("succeeded", succeeded.Load()),
			zap.Int64("failed", failed.Load()),
		)

		return writeBatchResults(rows)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchCSV, "csv", "", "path to profiles CSV file (required)")
	batchCmd.Flags().StringVar(&batchPlatform, "platform", "", "default platform for rows without a platform column")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max profiles to process (0 = all)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "max profiles processed concurrently (default from config)")
	batchCmd.Flags().BoolVar(&batchEnterprise, "enterprise", false, "run the full enterprise analysis per profile")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "write results JSON to file (default: stdout)")
	_ = batchCmd.MarkFlagRequired("csv")
	rootCmd.AddCommand(batchCmd)
}

// estimateProfile runs one profile through the service and captures the error
// as data so the batch can continue.
func estimateProfile(ctx context.Context, svc *estimator.Service, profile batchProfile) batchRow {
	row := batchRow{Row: profile.Row, Platform: profile.Platform}
	if batchEnterprise {
		result, err := svc.EstimateEnterprise(ctx, profile.Input, profile.Platform)
		if err != nil {
			row.Error = err.Error()
			return row
		}
		row.Enterprise = result
		return row
	}
	result, err := svc.Estimate(ctx, profile.Input, profile.Platform)
	if err != nil {
		row.Error = err.Error()
		return row
	}
	row.Result = result
	return row
}

// parseProfilesCSV reads the header-driven profile CSV.
func parseProfilesCSV(path, defaultPlatform string) ([]batchProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", path)
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, eris.Wrap(err, "read header")
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["followers"]; !ok {
		return nil, eris.New("missing required column: followers")
	}
	if _, ok := col["engagementrate"]; !ok {
		return nil, eris.New("missing required column: engagementRate")
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	numField := func(record []string, name string) (*float64, error) {
		s := field(record, name)
		if s == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, eris.Wrapf(err, "column %s", name)
		}
		return &v, nil
	}

	var profiles []batchProfile
	for rowNum := 2; ; rowNum++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "row %d", rowNum)
		}

		var raw engine.RawInput
		if raw.Followers, err = numField(record, "followers"); err != nil {
			return nil, eris.Wrapf(err, "row %d", rowNum)
		}
		if raw.EngagementRate, err = numField(record, "engagementrate"); err != nil {
			return nil, eris.Wrapf(err, "row %d", rowNum)
		}
		if raw.AverageViews, err = numField(record, "averageviews"); err != nil {
			return nil, eris.Wrapf(err, "row %d", rowNum)
		}
		if raw.PostFrequency, err = numField(record, "postfrequency"); err != nil {
			return nil, eris.Wrapf(err, "row %d", rowNum)
		}
		raw.Niche = field(record, "niche")
		raw.Location = field(record, "location")

		platform := field(record, "platform")
		if platform == "" {
			platform = defaultPlatform
		}
		if platform == "" {
			return nil, eris.Errorf("row %d: no platform column and no --platform flag", rowNum)
		}

		profiles = append(profiles, batchProfile{
			Row:      rowNum,
			Platform: strings.ToLower(platform),
			Input:    raw,
		})
	}
	return profiles, nil
}

// writeBatchResults writes rows to the output file or stdout.
func writeBatchResults(rows []batchRow) error {
	var w *os.File
	if batchOutput != "" {
		f, err := os.Create(batchOutput)
		if err != nil {
			return eris.Wrap(err, "batch: create output file")
		}
		defer f.Close() //nolint:errcheck
		w = f
	} else {
		w = os.Stdout
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
