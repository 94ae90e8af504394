package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the appshelf CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "appshelf <input-file>",
		Short:   "Mobile app catalog builder",
		Version: a.version,
		Long: `Appshelf builds a catalog of mobile apps from a list of identifiers.

It fetches metadata and media for each app from Google Play and the Apple
App Store, reconciles the two sources, writes the result into an xlsx
workbook with embedded images and downloads icons and screenshots into a
local content directory. The render subcommand turns an existing workbook
into a static searchable HTML page.`,
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: a.setupCommand,
		SilenceErrors:     true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Arguments validated; usage would only add noise from here on.
			cmd.SilenceUsage = true
			return a.runBuild(cmd.Context(), args[0])
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.appshelf.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	// Build flags
	rootCmd.Flags().StringVar(&a.config.OutputFile, "output", a.config.OutputFile, "workbook output path")
	rootCmd.Flags().StringVar(&a.config.ContentDir, "content-dir", a.config.ContentDir, "directory for downloaded icons and screenshots")
	rootCmd.Flags().IntVar(&a.config.Concurrency, "concurrency", a.config.Concurrency, "how many apps to process at once")
	rootCmd.Flags().IntVar(&a.config.MaxScreenshots, "max-screenshots", a.config.MaxScreenshots, "screenshots to keep per app")
	rootCmd.Flags().StringVar(&a.config.Country, "country", a.config.Country, "store country code")
	rootCmd.Flags().StringVar(&a.config.Lang, "lang", a.config.Lang, "store language code")

	rootCmd.SetVersionTemplate("appshelf {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// Flags are defined as persistent flags above, so errors indicate
	// programming errors
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	logLevel := mustGetString(cmd, "log-level")

	a.config.UpdateFromFlags(verbose, quiet, noColor, logLevel)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(a.NewRenderCommand())
	rootCmd.AddCommand(a.NewVersionCommand())
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
