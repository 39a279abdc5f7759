/*
Package app links together all the various components
to construct the swapd app.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/app"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store/iavl"
	"github.com/iov-one/tokenswap/x"
	"github.com/iov-one/tokenswap/x/htlc"
	"github.com/iov-one/tokenswap/x/sigs"
	"github.com/iov-one/tokenswap/x/token"
	"github.com/iov-one/tokenswap/x/utils"
	"github.com/prometheus/client_golang/prometheus"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// metrics, logging, and recovery.
func Chain(metrics utils.Metrics) app.Decorators {
	return app.ChainDecorators(
		utils.NewRecovery(),
		utils.NewLogging(),
		metrics,
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		// redeem and refund after expiry are valid without a signature
		sigs.NewDecorator().AllowMissingSigs(),
		// on DeliverTx, bad tx will increment nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to the token and htlc handlers.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	ledger := token.NewController()
	token.RegisterRoutes(r, authFn, ledger)
	htlc.RegisterRoutes(r, authFn, ledger, htlc.BlockClock{})
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/", "/auth", "/accounts", "/swaps" and "/vaults"
func QueryRouter() tokenswap.QueryRouter {
	r := tokenswap.NewQueryRouter()
	r.RegisterAll(
		app.RegisterQuery,
		sigs.RegisterQuery,
		token.RegisterQuery,
		htlc.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis initializers of all extensions.
func Initializers() tokenswap.Initializer {
	return tokenswap.ChainInitializers(
		token.Initializer{},
		htlc.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp. Transaction metrics are
// registered with reg.
func Stack(reg prometheus.Registerer) tokenswap.Handler {
	authFn := Authenticator()
	return Chain(utils.NewMetrics(reg)).
		WithHandler(Router(authFn))
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h tokenswap.Handler,
	tx tokenswap.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store, err := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	if err != nil {
		return app.BaseApp{}, err
	}
	store = store.WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path. An empty path keeps the data in memory.
func CommitKVStore(dbPath string) (tokenswap.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewCommitStore("", "memory"), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
