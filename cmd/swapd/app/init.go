package app

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/crypto"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/x/htlc"
	"github.com/iov-one/tokenswap/x/token"
	"github.com/prometheus/client_golang/prometheus"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// DevToken is the token type used by GenInitOptions unless a token name
// is given.
const DevToken = "dev"

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode.
//
// The optional arguments are a token name and an owner address. Without
// an owner a key is generated and its seed is printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	name := DevToken
	if len(args) > 0 {
		name = args[0]
	}

	var owner tokenswap.Address
	if len(args) > 1 {
		addr, err := tokenswap.ParseAddress(args[1])
		if err != nil {
			return nil, err
		}
		owner = addr
	} else {
		key := crypto.GenPrivKeyEd25519()
		owner = key.PublicKey().Address()
		fmt.Printf("generated key seed: %X\n", key.Seed())
	}

	state := map[string]interface{}{
		"token": []token.GenesisAccount{
			{
				Token:   tokenswap.NewAddress([]byte(name)),
				Owner:   owner,
				Balance: 123456789,
			},
		},
		"htlc": htlc.DefaultConfiguration(),
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "swap.db")
	}

	stack := Stack(prometheus.DefaultRegisterer)
	application, err := Application("swapd", stack, TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(logger)
	return application, nil
}
