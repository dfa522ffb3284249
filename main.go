package main

import (
	"errors"
	"os"

	"github.com/gnzdotmx/workflowlint/cmd"
	"github.com/gnzdotmx/workflowlint/internal/config"
	"github.com/gnzdotmx/workflowlint/internal/utils"
	"github.com/gnzdotmx/workflowlint/internal/validator"
)

func init() {
	// Load .env file if it exists
	if err := config.LoadDotEnv(); err != nil {
		utils.LogWarning("%v", err)
	}
}

func main() {
	os.Exit(exitCode(cmd.Execute()))
}

// exitCode maps the command result to the process exit status
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	// Per-file failures have already been reported line by line
	if !errors.Is(err, validator.ErrValidationFailed) {
		utils.LogError("Error: %s", err)
	}
	return 1
}
