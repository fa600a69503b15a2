package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"coursecal/internal/config"
	"coursecal/internal/sheet"
	"coursecal/internal/term"
)

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "coursecal.yaml")
	fileCfg := config.DefaultConfig()
	fileCfg.Schedule = "file.xlsx"
	fileCfg.Output = "file.ics"
	fileCfg.TermDates = "file.txt"
	if err := fileCfg.Save(cfgPath); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvOutput, "env.ics")
	t.Setenv(config.EnvTermDates, "env.txt")

	cfg, err := loadConfig(&rootFlags{
		configPath: cfgPath,
		envFile:    filepath.Join(dir, ".env"),
		termDates:  "flag.txt",
	})
	if err != nil {
		t.Fatalf("loadConfig returned an error: %v", err)
	}
	if cfg.Schedule != "file.xlsx" {
		t.Errorf("Schedule = %q, want file value", cfg.Schedule)
	}
	if cfg.Output != "env.ics" {
		t.Errorf("Output = %q, want env value", cfg.Output)
	}
	if cfg.TermDates != "flag.txt" {
		t.Errorf("TermDates = %q, want flag value", cfg.TermDates)
	}
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	table := term.Table{20230824, 20231020, 20231023, 20231215, 20240111, 20240301, 20240311, 20240502}
	termPath := filepath.Join(dir, "term_dates.txt")
	if err := term.SaveTable(termPath, table); err != nil {
		t.Fatal(err)
	}
	schedule := filepath.Join(dir, "schedule.xlsx")
	if err := sheet.WriteTemplate(schedule, [][]string{
		{"2023 Fall A Term", "CS-1101-01", "Lecture", "M-W-F | 10:00 AM - 10:50 AM", "Fuller Labs 320", "Ada Lovelace", "In-Person"},
	}); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "schedule.ics")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{
		"generate",
		"--config", filepath.Join(dir, "coursecal.yaml"),
		"--env-file", filepath.Join(dir, ".env"),
		"--schedule", schedule,
		"--term-dates", termPath,
		"--output", output,
	})
	if err := root.Execute(); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.Contains(out.String(), "Wrote 1 courses") {
		t.Errorf("unexpected output %q", out.String())
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("calendar not written: %v", err)
	}
	if !strings.Contains(string(data), "BYDAY=MO,WE,FR") {
		t.Errorf("calendar is missing the recurrence:\n%s", data)
	}
}
