package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dshills/phiscrub/internal/bridge"
	"github.com/dshills/phiscrub/internal/config"
	"github.com/dshills/phiscrub/internal/output"
	"github.com/dshills/phiscrub/internal/scrub"
	"github.com/dshills/phiscrub/internal/session"
	"github.com/spf13/cobra"
)

// insertTimeout bounds the round trip to the page agent.
const insertTimeout = 30 * time.Second

// Scrub flags
var (
	flagModel   string
	flagFormat  string
	flagOut     string
	flagInsert  bool
	flagQuiet   bool
	flagNoCheck bool
	flagCopy    bool
)

var scrubCmd = &cobra.Command{
	Use:   "scrub [text]",
	Short: "Redact PHI from text with the local model",
	Long: "Redact PHI from the given text, or from stdin when no argument is given. " +
		"Identifiers are replaced with bracketed tags such as [NAME] and [DATE].",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		text, err := readInput(args, cmd.InOrStdin())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		runScrub(cmd.Context(), text, cfg)
		return nil
	},
}

func runScrub(ctx context.Context, text string, cfg config.Config) {
	if isBlank(text) {
		fail(scrub.ErrEmptyInput)
		return
	}
	if _, err := output.GetWriter(cfg.Format); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	s := newScrubber(cfg, log)
	if !flagNoCheck {
		if _, err := s.CheckAvailability(ctx); err != nil {
			fail(err)
			return
		}
	}

	var sender session.Sender
	if flagInsert {
		sender = bridge.NewClient(cfg.AgentAddr)
	}
	ctrl := session.New(s, sender)

	res, err := ctrl.Scrub(ctx, text)
	if err != nil {
		fail(err)
		return
	}

	if err := output.WriteResult(&res, cfg.Format, flagOut, !flagQuiet); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if res.LineDrift() {
		fmt.Fprintf(os.Stderr, "WARNING: line count changed from %d to %d; review the output before use\n",
			res.LinesIn, res.LinesOut)
	}

	if flagCopy {
		if err := clip.WriteAll(res.Redacted); err != nil {
			fmt.Fprintf(os.Stderr, "Error copying to clipboard: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
		fmt.Fprintln(os.Stderr, "Copied")
	}

	if !flagInsert {
		return
	}
	insertCtx, cancel := context.WithTimeout(ctx, insertTimeout)
	defer cancel()
	if err := ctrl.Insert(insertCtx); err != nil {
		fail(err)
		return
	}
	fmt.Fprintln(os.Stderr, "Inserted into page")
}

func init() {
	scrubCmd.Flags().StringVar(&flagModel, "model", "", "Model name (default phi3:mini)")
	scrubCmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json)")
	scrubCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	scrubCmd.Flags().BoolVar(&flagInsert, "insert", false, "Insert the redacted text into the active chat page")
	scrubCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Print only the redacted text")
	scrubCmd.Flags().BoolVar(&flagCopy, "copy", false, "Copy the redacted text to the system clipboard")
	scrubCmd.Flags().BoolVar(&flagNoCheck, "no-check", false, "Skip the model availability check")
}
