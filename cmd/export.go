package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/creatorpulse/earnings-cli/internal/engine"
	"github.com/creatorpulse/earnings-cli/internal/store"
)

var (
	exportOutput   string
	exportPlatform string
	exportNiche    string
	exportLimit    int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved estimates to an XLSX workbook",
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

		records, err := st.ListEstimates(ctx, store.Filter{
			Platform: exportPlatform,
			Niche:    exportNiche,
			Limit:    exportLimit,
		})
		if err != nil {
			return eris.Wrap(err, "list estimates")
		}
		if len(records) == 0 {
			return eris.New("export: no saved estimates match the filter")
		}

		if err := writeWorkbook(records, exportOutput); err != nil {
			return err
		}
		zap.L().Info("export complete",
			zap.Int("records", len(records)),
			zap.String("path", exportOutput),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOutput, "output", "estimates.xlsx", "output workbook path")
	exportCmd.Flags().StringVar(&exportPlatform, "platform", "", "filter by platform")
	exportCmd.Flags().StringVar(&exportNiche, "niche", "", "filter by niche")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 1000, "max records to export")
	rootCmd.AddCommand(exportCmd)
}

// exportChannels fixes the column order across platforms; rows leave cells
// empty for channels the platform does not pay.
var exportChannels = []string{
	engine.ChannelCreatorFund, engine.ChannelAdRevenue, engine.ChannelLiveGifts,
	engine.ChannelMemberships, engine.ChannelSuperChat, engine.ChannelBrandPartnerships,
	engine.ChannelAffiliate, engine.ChannelMerchandise, engine.ChannelOther,
}

func writeWorkbook(records []store.Record, path string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("estimates")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, name := range []string{
		"id", "created_at", "platform", "niche", "location",
		"followers", "engagement_rate", "monthly", "yearly",
	} {
		header.AddCell().Value = name
	}
	for _, name := range exportChannels {
		header.AddCell().Value = name
	}

	for _, r := range records {
		row := sheet.AddRow()
		row.AddCell().Value = r.ID
		row.AddCell().Value = r.CreatedAt.Format("2006-01-02 15:04:05")
		row.AddCell().Value = string(r.Platform)
		row.AddCell().Value = r.Input.Niche
		row.AddCell().Value = r.Input.Location
		row.AddCell().SetFloat(r.Input.Followers)
		row.AddCell().SetFloat(r.Input.EngagementRate)
		row.AddCell().SetFloat(r.Result.MonthlyEarnings)
		row.AddCell().SetFloat(r.Result.YearlyEarnings)
		for _, name := range exportChannels {
			cell := row.AddCell()
			if v, ok := r.Result.Breakdown[name]; ok {
				cell.SetFloat(v)
			}
		}
	}

	return eris.Wrap(f.Save(path), "export: save workbook")
}
