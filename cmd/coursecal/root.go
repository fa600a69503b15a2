package main

import (
	"os"

	"github.com/spf13/cobra"
	xterm "golang.org/x/term"

	"coursecal/internal/config"
	appLog "coursecal/internal/log"
	"coursecal/internal/pipeline"
	"coursecal/internal/term"
)

const version = "0.1.0"

// rootFlags holds values shared by every subcommand.
type rootFlags struct {
	configPath string
	envFile    string
	logLevel   string
	verbose    bool

	schedule  string
	output    string
	termDates string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:           "coursecal",
		Short:         "Turn a course schedule spreadsheet into an ICS calendar",
		Long:          `Reads the courses of a schedule workbook, aligns each one to the academic term dates and writes one weekly recurring event per course to an iCalendar file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			appLog.SetLevel(appLog.ParseLevel(flags.logLevel))
			if flags.verbose {
				appLog.SetLevel(appLog.LevelDebug)
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "coursecal.yaml", "Path to config file")
	pf.StringVar(&flags.envFile, "env-file", ".env", "Optional dotenv file with COURSECAL_* overrides")
	pf.StringVar(&flags.logLevel, "log-level", "info", "Minimum log level: debug, info, warn or error")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&flags.schedule, "schedule", "", "Schedule workbook (overrides config)")
	pf.StringVar(&flags.output, "output", "", "Calendar output file (overrides config)")
	pf.StringVar(&flags.termDates, "term-dates", "", "Term table file (overrides config)")

	root.AddCommand(
		newGenerateCmd(&flags),
		newTermsCmd(&flags),
		newPreviewCmd(&flags),
		newServeCmd(&flags),
	)
	return root
}

// loadConfig resolves the effective config: defaults, then the YAML file,
// then the environment, then command-line flags.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(flags.envFile); err != nil {
		return nil, err
	}
	if flags.schedule != "" {
		cfg.Schedule = flags.schedule
	}
	if flags.output != "" {
		cfg.Output = flags.output
	}
	if flags.termDates != "" {
		cfg.TermDates = flags.termDates
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	appLog.Debug("effective config",
		"config_path", flags.configPath,
		"schedule", cfg.Schedule,
		"output", cfg.Output,
		"term_dates", cfg.TermDates,
		"timezone", cfg.Timezone,
	)
	return cfg, nil
}

// interactiveCollector returns a prompt on stdin/stdout, or nil when stdin
// is not a terminal.
func interactiveCollector() pipeline.Collector {
	if !xterm.IsTerminal(int(os.Stdin.Fd())) {
		appLog.Debug("stdin is not a terminal; term dates will not be prompted for")
		return nil
	}
	return term.NewPrompter(os.Stdin, os.Stdout)
}
