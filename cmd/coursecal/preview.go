package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"coursecal/internal/ics"
	"coursecal/internal/pipeline"
)

func newPreviewCmd(flags *rootFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "List the first meetings of every course without writing a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			res, err := pipeline.Run(pipeline.Options{
				TermDates: cfg.TermDates,
				Schedule:  cfg.Schedule,
				ProdID:    cfg.ProdID,
				Collector: interactiveCollector(),
			})
			if err != nil {
				return err
			}

			events, err := ics.ParseCalendar([]byte(res.Document))
			if err != nil {
				return err
			}
			expanded, err := ics.ExpandOccurrences(events, ics.ExpandConfig{
				DisplayLocation: cfg.Location(),
			})
			if err != nil {
				return err
			}

			for i, ev := range events {
				rec := res.Records[i]
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, term %s): %s\n", ev.Summary, rec.CourseID, rec.Term, rec.Meetings)
				shown := 0
				for _, occ := range expanded.Occurrences {
					if occ.UID != ev.UID || shown == limit {
						continue
					}
					shown++
					fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s-%s\n",
						occ.Start.Format("Mon 2006-01-02"),
						occ.Start.Format("15:04"),
						occ.End.Format("15:04 MST"))
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 3, "Meetings to list per course")
	return cmd
}
