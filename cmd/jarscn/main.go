package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/jarscn/internal/logging"
	"github.com/ludo-technologies/jarscn/internal/version"
	"github.com/ludo-technologies/jarscn/service"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jarscn",
		Short: "A JAR Bytecode Metrics Analyzer",
		Long: `jarscn reads compiled JAR files and reports object-oriented metrics
straight from the class-file bytecode, without source code.

Metrics:
  • Inheritance depth (maximum and average)
  • ABC metrics (assignments, branches, conditions and magnitude)
  • Overridden methods per class
  • Fields per class`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			logging.Configure(verbose)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewAnalyzeCmd())
	rootCmd.AddCommand(NewGraphCmd())
	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewInitCmd())

	return rootCmd
}

// printError reports err with its category and recovery suggestions
func printError(w io.Writer, err error) {
	categorizer := service.NewErrorCategorizer()
	categorized := categorizer.Categorize(err)

	fmt.Fprintf(w, "Error: %v\n", err)
	if categorized == nil || categorized.Category == "" {
		return
	}
	fmt.Fprintf(w, "\n%s: %s\n", categorized.Category, categorized.Message)
	for _, suggestion := range categorizer.GetRecoverySuggestions(categorized.Category) {
		fmt.Fprintf(w, "  • %s\n", suggestion)
	}
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}
