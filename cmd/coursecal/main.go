package main

import (
	"os"

	appLog "coursecal/internal/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		appLog.Error("coursecal failed", err)
		os.Exit(1)
	}
}
