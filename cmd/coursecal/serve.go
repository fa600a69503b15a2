package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"coursecal/internal/config"
	appLog "coursecal/internal/log"
	"coursecal/internal/pipeline"
	"coursecal/internal/web"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calendar over HTTP and rebuild it on a schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}
			return serve(cfg)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "HTTP listen address (overrides config if set)")
	return cmd
}

func serve(cfg *config.Config) error {
	srv := web.NewServer(cfg)

	// Serve mode never prompts; the term table must already be usable.
	rebuild := func() error {
		res, err := pipeline.Run(pipeline.Options{
			TermDates: cfg.TermDates,
			Schedule:  cfg.Schedule,
			Output:    cfg.Output,
			ProdID:    cfg.ProdID,
		})
		if err != nil {
			return err
		}
		return srv.SetCalendar(res.Document)
	}
	if err := rebuild(); err != nil {
		return err
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(cfg.Refresh, func() {
		if err := rebuild(); err != nil {
			// Keep serving the previous calendar.
			appLog.Error("scheduled rebuild failed", err, "schedule", cfg.Schedule)
			return
		}
		appLog.Info("scheduled rebuild completed")
	}); err != nil {
		return err
	}
	c.Start()
	defer func() {
		<-c.Stop().Done()
	}()
	appLog.Info("rebuild scheduled", "refresh", cfg.Refresh)

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := srv.ListenAndServe(ctx)
	appLog.Info("coursecal exiting")
	return err
}
