package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dshills/phiscrub/internal/bridge"
	"github.com/dshills/phiscrub/internal/config"
	"github.com/dshills/phiscrub/internal/session"
	"github.com/spf13/cobra"
)

var errEmptyInsert = errors.New("nothing to insert")

var insertCmd = &cobra.Command{
	Use:   "insert [text]",
	Short: "Insert already-redacted text into the active chat page",
	Long: "Send text to the page agent for insertion into the chat input of the active tab. " +
		"Reads stdin when no argument is given. The text is sent as-is; run it through " +
		"`phiscrub scrub` first.",
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
		runInsert(cmd.Context(), strings.TrimSpace(text), bridge.NewClient(cfg.AgentAddr))
		return nil
	},
}

func runInsert(ctx context.Context, text string, sender session.Sender) {
	if text == "" {
		fail(errEmptyInsert)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, insertTimeout)
	defer cancel()
	if err := session.Deliver(ctx, sender, text); err != nil {
		fail(err)
		return
	}
	fmt.Fprintln(os.Stderr, "Inserted into page")
}
