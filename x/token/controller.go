package token

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
)

// Controller is the functionality needed by handlers that move tokens.
type Controller interface {
	// Transfer moves amount of token from one owner account to another.
	// authority must be the authority of the source account.
	Transfer(db tokenswap.KVStore, token, from, to, authority tokenswap.Address, amount uint64) error

	// Balance returns the balance of an account or ErrNotFound.
	Balance(db tokenswap.ReadOnlyKVStore, token, owner tokenswap.Address) (uint64, error)

	// OpenAccount creates an empty account. Opening an existing account
	// with the same authority is a no-op.
	OpenAccount(db tokenswap.KVStore, token, owner, authority tokenswap.Address) error

	// CloseAccount moves the whole balance to the beneficiary account
	// and deletes the account. The moved amount is returned.
	CloseAccount(db tokenswap.KVStore, token, owner, authority, beneficiary tokenswap.Address) (uint64, error)

	// Issue credits amount to an existing account.
	Issue(db tokenswap.KVStore, token, owner tokenswap.Address, amount uint64) error
}

// BaseController is the default Controller implementation.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on the accounts bucket.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

func (c BaseController) load(db tokenswap.ReadOnlyKVStore, token, owner tokenswap.Address) (*Account, error) {
	var acc Account
	if err := c.bucket.One(db, AccountKey(token, owner), &acc); err != nil {
		return nil, errors.Wrapf(err, "account %s", owner)
	}
	return &acc, nil
}

func (c BaseController) save(db tokenswap.KVStore, acc *Account) error {
	return c.bucket.Put(db, AccountKey(acc.Token, acc.Owner), acc)
}

func (c BaseController) Transfer(db tokenswap.KVStore, token, from, to, authority tokenswap.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive transfer")
	}
	sender, err := c.load(db, token, from)
	if err != nil {
		return err
	}
	if !sender.Authority.Equals(authority) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not the account authority", authority)
	}
	if sender.Balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, need %d", sender.Balance, amount)
	}
	recipient, err := c.load(db, token, to)
	if err != nil {
		return errors.Wrap(err, "recipient")
	}
	if from.Equals(to) {
		return nil
	}
	if recipient.Balance+amount < recipient.Balance {
		return errors.Wrap(errors.ErrOverflow, "recipient balance")
	}

	sender.Balance -= amount
	recipient.Balance += amount
	if err := c.save(db, sender); err != nil {
		return err
	}
	return c.save(db, recipient)
}

func (c BaseController) Balance(db tokenswap.ReadOnlyKVStore, token, owner tokenswap.Address) (uint64, error) {
	acc, err := c.load(db, token, owner)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

func (c BaseController) OpenAccount(db tokenswap.KVStore, token, owner, authority tokenswap.Address) error {
	switch acc, err := c.load(db, token, owner); {
	case err == nil:
		if acc.Authority.Equals(authority) {
			return nil
		}
		return errors.Wrapf(errors.ErrDuplicate, "account %s exists with another authority", owner)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return c.save(db, &Account{
		Token:     token,
		Owner:     owner,
		Authority: authority,
	})
}

func (c BaseController) CloseAccount(db tokenswap.KVStore, token, owner, authority, beneficiary tokenswap.Address) (uint64, error) {
	acc, err := c.load(db, token, owner)
	if err != nil {
		return 0, err
	}
	if !acc.Authority.Equals(authority) {
		return 0, errors.Wrapf(errors.ErrUnauthorized, "%s is not the account authority", authority)
	}
	amount := acc.Balance
	if amount > 0 {
		if err := c.Transfer(db, token, owner, beneficiary, authority, amount); err != nil {
			return 0, err
		}
	}
	if err := c.bucket.Delete(db, AccountKey(token, owner)); err != nil {
		return 0, err
	}
	return amount, nil
}

func (c BaseController) Issue(db tokenswap.KVStore, token, owner tokenswap.Address, amount uint64) error {
	acc, err := c.load(db, token, owner)
	if err != nil {
		return err
	}
	if acc.Balance+amount < acc.Balance {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	acc.Balance += amount
	return c.save(db, acc)
}
