package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dshills/phiscrub/internal/config"
	"github.com/dshills/phiscrub/internal/ollama"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that Ollama is running and the redaction model is installed",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		runStatus(cmd.Context(), cfg)
		return nil
	},
}

func runStatus(ctx context.Context, cfg config.Config) {
	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	fmt.Fprintf(os.Stdout, "Checking %s...\n", ollama.NormalizeHost(cfg.OllamaHost))

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	avail, err := newScrubber(cfg, log).CheckAvailability(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		if h := hint(err); h != "" {
			fmt.Fprintln(os.Stderr, h)
		}
		exitCode = exitCodeFor(err)
		return
	}

	fmt.Fprintf(os.Stdout, "OK: AI ready • Ollama + %s\n", avail.Model)
}
