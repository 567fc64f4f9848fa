package main

import (
	"os"

	"github.com/usf-cs272/gradebot/internal/actions"
)

func main() {
	logger := actions.NewLogger(os.Stdout)

	rootCmd := newRootCmd(logger)
	if err := rootCmd.Execute(); err != nil {
		// SetFailed emits the ::error:: workflow command; the non-zero exit
		// is what actually fails the Actions job
		logger.SetFailed("%s", err)
		os.Exit(1)
	}
}
