package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	appLog "coursecal/internal/log"
	"coursecal/internal/pipeline"
)

func newTermsCmd(flags *rootFlags) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "terms",
		Short: "Show the term dates, collecting them first if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			collector := interactiveCollector()
			if reset {
				if collector == nil {
					return errors.New("terms --reset needs an interactive terminal")
				}
				if err := os.Remove(cfg.TermDates); err != nil && !errors.Is(err, fs.ErrNotExist) {
					return err
				}
				appLog.Info("term table discarded", "path", cfg.TermDates)
			}

			table, err := pipeline.LoadTerms(cfg.TermDates, collector)
			if err != nil {
				return err
			}
			for i := 0; i < len(table); i += 2 {
				fmt.Fprintf(cmd.OutOrStdout(), "%c term: %s - %s\n", 'A'+i/2, table[i], table[i+1])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "Discard the stored term dates and enter them again")
	return cmd
}
