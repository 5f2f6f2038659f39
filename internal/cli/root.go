package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitUsageError   = 2
	ExitUnavailable  = 3
	ExitRuntimeError = 4
)

var rootCmd = &cobra.Command{
	Use:   "phiscrub",
	Short: "Local PHI scrubber for AI chat prompts",
	Long: "phiscrub removes protected health information from clinical text using a local " +
		"Ollama model, then optionally inserts the redacted text into an open chat page.",
	SilenceUsage: true,
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(scrubCmd)
	rootCmd.AddCommand(insertCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(agentCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print phiscrub version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "phiscrub version %s\n", version)
	},
}

// Persistent flags shared by every command.
var (
	flagOllamaHost string
	flagAgentAddr  string
	flagLogLevel   string
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagOllamaHost, "host", "", "Ollama host (default http://localhost:11434)")
	pf.StringVar(&flagAgentAddr, "agent-addr", "", "Address of the page agent (default 127.0.0.1:8765)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Diagnostic log level (debug, info, warn, error)")
}
