package token

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

const optKey = "token"

// GenesisAccount is used to parse the json from genesis file.
// Authority defaults to the owner.
type GenesisAccount struct {
	Token     tokenswap.Address `json:"token"`
	Owner     tokenswap.Address `json:"owner"`
	Authority tokenswap.Address `json:"authority,omitempty"`
	Balance   uint64            `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ tokenswap.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts tokenswap.Options, kv tokenswap.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	ctrl := NewController()
	for i, acct := range accts {
		authority := acct.Authority
		if len(authority) == 0 {
			authority = acct.Owner
		}
		acc := Account{Token: acct.Token, Owner: acct.Owner, Authority: authority}
		if err := acc.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		if err := ctrl.OpenAccount(kv, acct.Token, acct.Owner, authority); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		if acct.Balance == 0 {
			continue
		}
		if err := ctrl.Issue(kv, acct.Token, acct.Owner, acct.Balance); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}
