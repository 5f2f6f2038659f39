package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dshills/phiscrub/internal/bridge"
	"github.com/dshills/phiscrub/internal/browser"
	"github.com/dshills/phiscrub/internal/config"
	"github.com/dshills/phiscrub/internal/inject"
	"github.com/dshills/phiscrub/internal/logging"
	"github.com/spf13/cobra"
)

var flagCDPURL string

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Run the page agent that inserts text into the active chat tab",
	Long: "Attach to a Chromium browser started with --remote-debugging-port and serve " +
		"insert requests from `phiscrub scrub --insert` and `phiscrub insert`.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		runAgent(cmd.Context(), cfg)
		return nil
	},
}

func runAgent(ctx context.Context, cfg config.Config) {
	listenAddr, err := bridge.ListenAddr(cfg.AgentAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	b, err := browser.Connect(connectCtx, cfg.CDPURL, logging.Component(log, "browser"))
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Start Chromium with: --remote-debugging-port=9222")
		exitCode = ExitRuntimeError
		return
	}
	defer b.Close()

	inj := inject.New(
		inject.WithAllowedHosts(cfg.AllowedHosts),
		inject.WithLogger(logging.Component(log, "inject")),
	)
	bridgeSrv := bridge.NewServer(inject.NewHandler(inj, b), logging.Component(log, "bridge"))

	mux := http.NewServeMux()
	mux.Handle(bridge.Path, bridgeSrv)
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	fmt.Fprintf(os.Stderr, "phiscrub agent listening on ws://%s%s (browser %s)\n",
		listenAddr, bridge.Path, cfg.CDPURL)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Error shutting down: %v\n", err)
			exitCode = ExitRuntimeError
		}
	}
}

func init() {
	agentCmd.Flags().StringVar(&flagCDPURL, "cdp-url", "", "Chromium DevTools endpoint (default http://localhost:9222)")
}
