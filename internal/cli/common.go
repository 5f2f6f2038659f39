package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dshills/phiscrub/internal/bridge"
	"github.com/dshills/phiscrub/internal/config"
	"github.com/dshills/phiscrub/internal/inject"
	"github.com/dshills/phiscrub/internal/logging"
	"github.com/dshills/phiscrub/internal/ollama"
	"github.com/dshills/phiscrub/internal/scrub"
	"github.com/dshills/phiscrub/internal/session"
	"go.uber.org/zap"
)

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagOllamaHost != "" {
		m["ollamaHost"] = flagOllamaHost
	}
	if flagAgentAddr != "" {
		m["agentAddr"] = flagAgentAddr
	}
	if flagLogLevel != "" {
		m["logLevel"] = flagLogLevel
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagCDPURL != "" {
		m["cdpURL"] = flagCDPURL
	}
	return m
}

func newLogger(cfg config.Config) *zap.Logger {
	log, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: invalid log settings, diagnostics disabled: %v\n", err)
		return zap.NewNop()
	}
	return log
}

func newScrubber(cfg config.Config, log *zap.Logger) *scrub.Scrubber {
	return scrub.New(ollama.New(cfg.OllamaHost),
		scrub.WithModel(cfg.Model),
		scrub.WithFamily(cfg.ModelFamily),
		scrub.WithLogger(logging.Component(log, "scrub")),
	)
}

// readInput returns the text argument, or all of stdin when none is given.
func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// exitCodeFor maps an operation error to a process exit code.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, scrub.ErrEmptyInput), errors.Is(err, errEmptyInsert):
		return ExitUsageError
	case scrub.IsModelUnavailable(err), ollama.IsUnavailable(err):
		return ExitUnavailable
	default:
		return ExitRuntimeError
	}
}

// hint returns a follow-up line for errors the user can act on.
func hint(err error) string {
	var mue *scrub.ModelUnavailableError
	var ire *session.InsertRejectedError
	switch {
	case errors.As(err, &mue):
		if mue.ServiceDown {
			return "Start Ollama with: ollama serve"
		}
		if mue.Guidance != "" {
			return "Run: " + mue.Guidance
		}
	case ollama.IsUnavailable(err):
		return "Start Ollama with: ollama serve"
	case errors.Is(err, bridge.ErrNoReceiver):
		return "Start the page agent with: phiscrub agent"
	case errors.As(err, &ire):
		switch ire.Code {
		case inject.CodeUnsupportedPage:
			return "Open ChatGPT or Perplexity in the active tab and try again."
		case inject.CodeNoTab:
			return "Open a ChatGPT or Perplexity tab and try again."
		case inject.CodeNoInputField, inject.CodeInsertionFailed:
			return "Failed to insert. Reload the page and try again."
		}
	}
	return ""
}

// fail reports err on stderr and sets the exit code.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if h := hint(err); h != "" {
		fmt.Fprintln(os.Stderr, h)
	}
	exitCode = exitCodeFor(err)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
