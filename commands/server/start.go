package server

import (
	"net/http"

	"github.com/iov-one/tokenswap/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	FlagHome    = "home"
	flagBind    = "bind"
	flagDebug   = "debug"
	flagMetrics = "metrics"
)

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(home string, logger log.Logger, debug bool) (abci.Application, error)

// StartCmd returns the command running the ABCI server until the
// process receives a termination signal. It never returns once the
// server is up.
func StartCmd(gen AppGenerator, logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the abci server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return start(gen, logger)
		},
	}
	cmd.Flags().String(flagBind, "tcp://localhost:46658", "address server listens on")
	cmd.Flags().Bool(flagDebug, false, "call stack returned on error")
	cmd.Flags().String(flagMetrics, "", "address the prometheus metrics are served on, empty to disable")
	for _, name := range []string{flagBind, flagDebug, flagMetrics} {
		if err := viper.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			panic(err)
		}
	}
	return cmd
}

func start(gen AppGenerator, logger log.Logger) error {
	addr := viper.GetString(flagBind)
	debug := viper.GetBool(flagDebug)

	// Generate the app in the proper dir
	app, err := gen(viper.GetString(FlagHome), logger, debug)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", addr)

	svr, err := server.NewServer(addr, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(err, "start abci server")
	}

	metrics := serveMetrics(viper.GetString(flagMetrics), logger)

	// Cleanup on SIGINT or SIGTERM, then the process exits.
	cmn.TrapSignal(logger, func() {
		svr.Stop()
		if metrics != nil {
			metrics.Close()
		}
	})

	// Run forever.
	select {}
}

// serveMetrics exposes the default prometheus registry under /metrics.
// It returns nil when addr is empty.
func serveMetrics(addr string, logger log.Logger) *http.Server {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server failed", "err", err)
		}
	}()
	return srv
}
