package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/cmd/swapd/app"
	"github.com/iov-one/tokenswap/commands/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "swapd")

	if err := rootCmd(logger).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd(logger log.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:          "swapd",
		Short:        "Token swap ABCI Application",
		SilenceUsage: true,
	}

	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".swapd")
	root.PersistentFlags().String(server.FlagHome, defaultHome, "directory to store files under")
	if err := viper.BindPFlag(server.FlagHome, root.PersistentFlags().Lookup(server.FlagHome)); err != nil {
		panic(err)
	}

	// SWAPD_HOME, SWAPD_BIND, SWAPD_DEBUG and SWAPD_METRICS override defaults.
	viper.SetEnvPrefix("swapd")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	root.AddCommand(
		server.InitCmd(app.GenInitOptions, logger),
		server.StartCmd(app.GenerateApp, logger),
		server.ValidateCmd(app.Initializers()),
		&cobra.Command{
			Use:   "version",
			Short: "Print the app version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Println(tokenswap.Version())
			},
		},
	)
	return root
}
