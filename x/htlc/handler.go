package htlc

import (
	"crypto/sha256"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
	"github.com/iov-one/tokenswap/x"
)

const (
	// pay swap cost up-front
	openSwapCost  int64 = 300
	closeSwapCost int64 = 0
)

// TokenLedger is the token sub-ledger holding all balances. Transfers
// must be atomic per call.
type TokenLedger interface {
	Transfer(db tokenswap.KVStore, token, from, to, authority tokenswap.Address, amount uint64) error
	Balance(db tokenswap.ReadOnlyKVStore, token, owner tokenswap.Address) (uint64, error)
	OpenAccount(db tokenswap.KVStore, token, owner, authority tokenswap.Address) error
	CloseAccount(db tokenswap.KVStore, token, owner, authority, beneficiary tokenswap.Address) (uint64, error)
}

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r tokenswap.Registry, auth x.Authenticator, ledger TokenLedger, clock Clock) {
	b := newBase(ledger)
	r.Handle(pathOpenMsg, OpenHandler{base: b, auth: auth, clock: clock})
	r.Handle(pathRedeemMsg, RedeemHandler{base: b})
	r.Handle(pathRefundAfterExpiryMsg, RefundAfterExpiryHandler{base: b, clock: clock})
	r.Handle(pathRefundWithConsentMsg, RefundWithConsentHandler{base: b, auth: auth})
}

// RegisterQuery will register the swap bucket as "/swaps" and the vault
// bucket as "/vaults"
func RegisterQuery(qr tokenswap.QueryRouter) {
	NewSwapBucket().Register("swaps", qr)
	NewVaultBucket().Register("vaults", qr)
}

// HashSecret returns the secret hash a secret unlocks.
func HashSecret(secret [32]byte) [32]byte {
	return sha256.Sum256(secret[:])
}

// base holds the state shared by all handlers.
type base struct {
	swaps  orm.ModelBucket
	vaults orm.ModelBucket
	ledger TokenLedger
}

func newBase(ledger TokenLedger) base {
	return base{
		swaps:  NewSwapBucket(),
		vaults: NewVaultBucket(),
		ledger: ledger,
	}
}

// OpenHandler locks funds in a new swap.
type OpenHandler struct {
	base
	auth  x.Authenticator
	clock Clock
}

var _ tokenswap.Handler = OpenHandler{}

// openPlan is everything Deliver needs, computed without writing.
type openPlan struct {
	msg       *OpenMsg
	conf      *Configuration
	swapAddr  tokenswap.Address
	swap      *Swap
	vaultAddr tokenswap.Address
	vault     *Vault
	newVault  bool
}

// Check does the validation and sets the cost of the transaction
func (h OpenHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{GasAllocated: openSwapCost}, nil
}

// Deliver moves the tokens from the funder to the vault and stores the
// swap record.
func (h OpenHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	p, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if p.newVault {
		if err := h.openVault(db, p); err != nil {
			return nil, err
		}
	}
	if err := h.ledger.Transfer(db, p.msg.TokenType, p.msg.Funder, p.vaultAddr, p.msg.Funder, p.msg.SwapAmount); err != nil {
		return nil, errors.Wrap(err, "lock funds")
	}
	if p.conf.RecordDeposit > 0 {
		if err := h.ledger.OpenAccount(db, p.conf.DepositToken, p.swapAddr, p.vault.Authority); err != nil {
			return nil, errors.Wrap(err, "record deposit account")
		}
		if err := h.ledger.Transfer(db, p.conf.DepositToken, p.msg.RentSponsor, p.swapAddr, p.msg.RentSponsor, p.conf.RecordDeposit); err != nil {
			return nil, errors.Wrap(err, "record deposit")
		}
	}
	if err := h.swaps.Put(db, p.swapAddr, p.swap); err != nil {
		return nil, err
	}

	tokenswap.GetLogger(ctx).Info("swap opened",
		"swap", p.swapAddr, "amount", p.swap.SwapAmount, "expiry", p.swap.ExpiryPoint)

	event := Opened{
		Terms:           termsOf(p.swapAddr, p.swap),
		ExpiryPoint:     p.swap.ExpiryPoint,
		Funder:          p.msg.Funder,
		DestinationData: p.msg.DestinationData,
	}
	return &tokenswap.DeliverResult{
		Data:   p.swapAddr,
		Events: []tokenswap.Event{event},
	}, nil
}

// openVault stores the vault record and opens its ledger accounts. The
// rent sponsor pays the vault deposit into the vault deposit account.
func (h OpenHandler) openVault(db tokenswap.KVStore, p *openPlan) error {
	if err := h.vaults.Put(db, p.vaultAddr, p.vault); err != nil {
		return err
	}
	if err := h.ledger.OpenAccount(db, p.vault.TokenType, p.vaultAddr, p.vault.Authority); err != nil {
		return errors.Wrap(err, "vault account")
	}
	if p.conf.VaultDeposit == 0 {
		return nil
	}
	depositAddr, _, err := VaultDepositAddress(p.vault.TokenType)
	if err != nil {
		return errors.Wrap(err, "vault deposit address")
	}
	if err := h.ledger.OpenAccount(db, p.conf.DepositToken, depositAddr, p.vault.Authority); err != nil {
		return errors.Wrap(err, "vault deposit account")
	}
	if err := h.ledger.Transfer(db, p.conf.DepositToken, p.msg.RentSponsor, depositAddr, p.msg.RentSponsor, p.conf.VaultDeposit); err != nil {
		return errors.Wrap(err, "vault deposit")
	}
	return nil
}

// validate does all common pre-processing between Check and Deliver.
func (h OpenHandler) validate(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*openPlan, error) {
	var msg OpenMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Funder) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "funder signature missing")
	}
	if !h.auth.HasAddress(ctx, msg.RentSponsor) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "rent sponsor signature missing")
	}

	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, err
	}
	if len(msg.DestinationData) > int(conf.MaxDestinationData) {
		return nil, errors.Wrapf(errors.ErrInput, "destination data longer than %d", conf.MaxDestinationData)
	}

	swapAddr, recordBump, err := SwapAddress(msg.TokenType, msg.Redeemer, msg.RefundParty, msg.SecretHash, msg.SwapAmount, msg.Timelock)
	if err != nil {
		return nil, errors.Wrap(err, "swap address")
	}
	switch err := h.swaps.Has(db, swapAddr); {
	case err == nil:
		return nil, errors.Wrapf(ErrSwapAlreadyExists, "swap %s", swapAddr)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}

	now, err := h.clock.CurrentPosition(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "clock")
	}
	expiry := now + msg.Timelock
	if expiry < now {
		return nil, errors.Wrapf(ErrTimelockOverflow, "%d + %d", now, msg.Timelock)
	}

	authority, identityBump, err := AuthorityAddress()
	if err != nil {
		return nil, errors.Wrap(err, "authority address")
	}
	vaultAddr, vaultBump, err := VaultAddress(msg.TokenType)
	if err != nil {
		return nil, errors.Wrap(err, "vault address")
	}
	var vault Vault
	newVault := false
	switch err := h.vaults.One(db, vaultAddr, &vault); {
	case errors.ErrNotFound.Is(err):
		newVault = true
		vault = Vault{TokenType: msg.TokenType, Bump: vaultBump, Authority: authority}
	case err != nil:
		return nil, err
	}

	return &openPlan{
		msg:       &msg,
		conf:      conf,
		swapAddr:  swapAddr,
		vaultAddr: vaultAddr,
		vault:     &vault,
		newVault:  newVault,
		swap: &Swap{
			IdentityBump: identityBump,
			RecordBump:   recordBump,
			RentSponsor:  msg.RentSponsor,
			TokenType:    msg.TokenType,
			Redeemer:     msg.Redeemer,
			RefundParty:  msg.RefundParty,
			SecretHash:   msg.SecretHash,
			SwapAmount:   msg.SwapAmount,
			Timelock:     msg.Timelock,
			ExpiryPoint:  expiry,
		},
	}, nil
}

// load returns the swap and the vault named by the request once all
// supplied addresses match the stored terms.
func (b base) load(db tokenswap.ReadOnlyKVStore, req closeRequest) (*Swap, error) {
	var swap Swap
	if err := b.swaps.One(db, req.swap, &swap); err != nil {
		return nil, err
	}
	var vault Vault
	switch err := b.vaults.One(db, req.vault, &vault); {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrAddressDerivationMismatch, "vault %s", req.vault)
	case err != nil:
		return nil, err
	}
	if err := verifyAddresses(&swap, &vault, req.swap, req.vault, req.authority); err != nil {
		return nil, err
	}
	if !swap.RentSponsor.Equals(req.rentSponsor) {
		return nil, errors.Wrapf(ErrInvalidRentSponsor, "%s", req.rentSponsor)
	}
	return &swap, nil
}

// release moves the escrowed funds to given party, returns the storage
// deposit to the rent sponsor and destroys the swap record.
func (b base) release(db tokenswap.KVStore, req closeRequest, swap *Swap, to tokenswap.Address) error {
	if err := b.ledger.Transfer(db, swap.TokenType, req.vault, to, req.authority, swap.SwapAmount); err != nil {
		return errors.Wrap(err, "release funds")
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return err
	}
	if conf.RecordDeposit > 0 {
		switch _, err := b.ledger.Balance(db, conf.DepositToken, req.swap); {
		case err == nil:
			if _, err := b.ledger.CloseAccount(db, conf.DepositToken, req.swap, req.authority, swap.RentSponsor); err != nil {
				return errors.Wrap(err, "return deposit")
			}
		case !errors.ErrNotFound.Is(err):
			return err
		}
	}
	return b.swaps.Delete(db, req.swap)
}

// RedeemHandler releases the funds to the redeemer in exchange for the
// secret.
type RedeemHandler struct {
	base
}

var _ tokenswap.Handler = RedeemHandler{}

func (h RedeemHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{GasAllocated: closeSwapCost}, nil
}

func (h RedeemHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	msg, swap, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.release(db, msg.request(), swap, swap.Redeemer); err != nil {
		return nil, err
	}

	tokenswap.GetLogger(ctx).Info("swap redeemed", "swap", msg.Swap)

	event := Redeemed{
		Terms:  termsOf(msg.Swap, swap),
		Secret: msg.Secret,
	}
	return &tokenswap.DeliverResult{Events: []tokenswap.Event{event}}, nil
}

func (h RedeemHandler) validate(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*RedeemMsg, *Swap, error) {
	var msg RedeemMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	swap, err := h.load(db, msg.request())
	if err != nil {
		return nil, nil, err
	}
	if HashSecret(msg.Secret) != swap.SecretHash {
		return nil, nil, errors.Wrap(ErrInvalidSecret, "hash mismatch")
	}
	return &msg, swap, nil
}

// RefundAfterExpiryHandler returns the funds of an expired swap to the
// refund party.
type RefundAfterExpiryHandler struct {
	base
	clock Clock
}

var _ tokenswap.Handler = RefundAfterExpiryHandler{}

func (h RefundAfterExpiryHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{GasAllocated: closeSwapCost}, nil
}

func (h RefundAfterExpiryHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	msg, swap, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.release(db, msg.request(), swap, swap.RefundParty); err != nil {
		return nil, err
	}

	tokenswap.GetLogger(ctx).Info("swap refunded", "swap", msg.Swap, "consent", false)

	event := RefundedAfterExpiry{
		Terms:       termsOf(msg.Swap, swap),
		ExpiryPoint: swap.ExpiryPoint,
	}
	return &tokenswap.DeliverResult{Events: []tokenswap.Event{event}}, nil
}

func (h RefundAfterExpiryHandler) validate(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*RefundAfterExpiryMsg, *Swap, error) {
	var msg RefundAfterExpiryMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	swap, err := h.load(db, msg.request())
	if err != nil {
		return nil, nil, err
	}
	now, err := h.clock.CurrentPosition(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "clock")
	}
	if now <= swap.ExpiryPoint {
		return nil, nil, errors.Wrapf(ErrRefundBeforeExpiry, "height %d, expiry %d", now, swap.ExpiryPoint)
	}
	return &msg, swap, nil
}

// RefundWithConsentHandler returns the funds to the refund party when the
// redeemer signs the request.
type RefundWithConsentHandler struct {
	base
	auth x.Authenticator
}

var _ tokenswap.Handler = RefundWithConsentHandler{}

func (h RefundWithConsentHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{GasAllocated: closeSwapCost}, nil
}

func (h RefundWithConsentHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	msg, swap, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.release(db, msg.request(), swap, swap.RefundParty); err != nil {
		return nil, err
	}

	tokenswap.GetLogger(ctx).Info("swap refunded", "swap", msg.Swap, "consent", true)

	event := InstantRefunded{Terms: termsOf(msg.Swap, swap)}
	return &tokenswap.DeliverResult{Events: []tokenswap.Event{event}}, nil
}

func (h RefundWithConsentHandler) validate(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*RefundWithConsentMsg, *Swap, error) {
	var msg RefundWithConsentMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	swap, err := h.load(db, msg.request())
	if err != nil {
		return nil, nil, err
	}
	if !swap.Redeemer.Equals(msg.Redeemer) {
		return nil, nil, errors.Wrapf(ErrInvalidRedeemer, "%s is not the redeemer", msg.Redeemer)
	}
	if !h.auth.HasAddress(ctx, msg.Redeemer) {
		return nil, nil, errors.Wrap(ErrInvalidRedeemer, "redeemer signature missing")
	}
	return &msg, swap, nil
}
