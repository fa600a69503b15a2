package main

import (
	"fmt"

	"github.com/spf13/cobra"

	appLog "coursecal/internal/log"
	"coursecal/internal/pipeline"
)

func newGenerateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Write the calendar file for the configured schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			res, err := pipeline.Run(pipeline.Options{
				TermDates: cfg.TermDates,
				Schedule:  cfg.Schedule,
				Output:    cfg.Output,
				ProdID:    cfg.ProdID,
				Collector: interactiveCollector(),
			})
			if err != nil {
				return err
			}
			appLog.Info("calendar generated", "courses", len(res.Records), "output", cfg.Output)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d courses to %s\n", len(res.Records), cfg.Output)
			return nil
		},
	}
}
