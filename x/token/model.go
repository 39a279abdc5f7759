package token

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
)

// BucketName is where accounts are stored.
const BucketName = "accounts"

// Account holds the balance of a single token type owned by a single
// address.
type Account struct {
	Token     tokenswap.Address `json:"token"`
	Owner     tokenswap.Address `json:"owner"`
	Authority tokenswap.Address `json:"authority"`
	Balance   uint64            `json:"balance" binary:"fixed64"`
}

var _ orm.Model = (*Account)(nil)

// Validate ensures all addresses are set.
func (a *Account) Validate() error {
	if err := a.Token.Validate(); err != nil {
		return errors.Wrap(err, "token")
	}
	if err := a.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := a.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	return nil
}

// AccountKey returns the primary key of an account.
func AccountKey(token, owner tokenswap.Address) []byte {
	key := make([]byte, 0, len(token)+len(owner))
	key = append(key, token...)
	return append(key, owner...)
}

// NewBucket returns a bucket for storing accounts.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Account{}, cdc)
}
