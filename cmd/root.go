package cmd

import (
	"github.com/gnzdotmx/workflowlint/internal/utils"
	"github.com/spf13/cobra"
)

// lintFlags are the command-line overrides shared by the root and validate commands
type lintFlags struct {
	// verbosityLevel is the command-line flag for setting the log level
	verbosityLevel string
	configPath     string
	dir            string
	schema         string
	report         string
	strict         bool
}

// NewRootCommand builds the workflowlint command tree
func NewRootCommand() *cobra.Command {
	flags := &lintFlags{}

	rootCmd := &cobra.Command{
		Use:   "workflowlint",
		Short: "Validate workflow definition files",
		Long: `workflowlint checks every JSON workflow definition in a directory
(./workflows by default) for the required top-level keys name, nodes and
connections, and that nodes is an array. It prints one OK or ERR line per
file and exits with status 1 if any file fails.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Set the global log level based on the flag
			utils.SetLogLevel(utils.LogLevelFromString(flags.verbosityLevel))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, flags, "")
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.verbosityLevel, "log-level", "l", "normal",
		"Set the logging verbosity level: quiet, normal, verbose, debug")
	pf.StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML config file (default .workflowlint.yaml if present)")
	pf.StringVarP(&flags.dir, "dir", "d", "", "Directory containing workflow files (default workflows)")
	pf.StringVarP(&flags.schema, "schema", "s", "", "Additional JSON Schema every workflow must satisfy")
	pf.StringVarP(&flags.report, "report", "r", "", "Write a YAML run report to this path")
	pf.BoolVar(&flags.strict, "strict", false, "Check that connections only reference declared nodes")

	rootCmd.AddCommand(newValidateCmd(flags))
	return rootCmd
}

// Execute runs the root command against os.Args
func Execute() error {
	return NewRootCommand().Execute()
}
