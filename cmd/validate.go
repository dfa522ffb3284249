package cmd

import (
	"fmt"

	"github.com/gnzdotmx/workflowlint/internal/config"
	"github.com/gnzdotmx/workflowlint/internal/utils"
	"github.com/gnzdotmx/workflowlint/internal/validator"

	"github.com/spf13/cobra"
)

func newValidateCmd(flags *lintFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [dir]",
		Short: "Validate the workflow files in a directory",
		Long:  `Check every workflow file in dir, or the configured directory when dir is omitted.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			return runValidate(cmd, flags, dir)
		},
	}
}

// resolveConfig layers explicitly set flags and the positional directory over the loaded config
func resolveConfig(cmd *cobra.Command, flags *lintFlags, dirArg string) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	set := cmd.Flags()
	if set.Changed("dir") {
		cfg.Dir = flags.dir
	}
	if set.Changed("schema") {
		cfg.Schema = flags.schema
	}
	if set.Changed("report") {
		cfg.Report = flags.report
	}
	if set.Changed("strict") {
		cfg.Strict = flags.strict
	}
	if dirArg != "" {
		cfg.Dir = dirArg
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runValidate(cmd *cobra.Command, flags *lintFlags, dirArg string) error {
	cfg, err := resolveConfig(cmd, flags, dirArg)
	if err != nil {
		return err
	}
	utils.LogDebug("Validating %s (extension %s, strict %t)", cfg.Dir, cfg.Extension, cfg.Strict)

	var schema *validator.SchemaChecker
	if cfg.Schema != "" {
		if schema, err = validator.LoadSchema(cfg.Schema); err != nil {
			return err
		}
		utils.LogVerbose("Using schema %s", cfg.Schema)
	}

	v := validator.New(validator.Options{
		Dir:       cfg.Dir,
		Extension: cfg.Extension,
		Strict:    cfg.Strict,
		Schema:    schema,
		Stdout:    cmd.OutOrStdout(),
		Stderr:    cmd.ErrOrStderr(),
	})

	summary, runErr := v.Run()
	if summary != nil && cfg.Report != "" {
		if err := validator.SaveReport(summary, cfg.Report); err != nil {
			return err
		}
	}

	return runErr
}
