package htlc

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

const (
	pathOpenMsg              = "htlc/open"
	pathRedeemMsg            = "htlc/redeem"
	pathRefundAfterExpiryMsg = "htlc/refund_after_expiry"
	pathRefundWithConsentMsg = "htlc/refund_with_consent"
)

var (
	_ tokenswap.Msg = (*OpenMsg)(nil)
	_ tokenswap.Msg = (*RedeemMsg)(nil)
	_ tokenswap.Msg = (*RefundAfterExpiryMsg)(nil)
	_ tokenswap.Msg = (*RefundWithConsentMsg)(nil)
)

// OpenMsg locks SwapAmount of TokenType from the Funder account in the
// vault. Both the funder and the rent sponsor must sign.
type OpenMsg struct {
	Funder      tokenswap.Address `json:"funder"`
	RentSponsor tokenswap.Address `json:"rent_sponsor"`
	TokenType   tokenswap.Address `json:"token_type"`
	Redeemer    tokenswap.Address `json:"redeemer"`
	RefundParty tokenswap.Address `json:"refund_party"`
	SecretHash  [32]byte          `json:"secret_hash"`
	SwapAmount  uint64            `json:"swap_amount" binary:"fixed64"`
	Timelock    uint64            `json:"timelock" binary:"fixed64"`
	// DestinationData is passed to the Opened event as it is.
	DestinationData []byte `json:"destination_data,omitempty"`
}

func (OpenMsg) Path() string {
	return pathOpenMsg
}

func (m *OpenMsg) Validate() error {
	if err := m.Funder.Validate(); err != nil {
		return errors.Wrap(err, "funder")
	}
	if err := m.RentSponsor.Validate(); err != nil {
		return errors.Wrap(err, "rent sponsor")
	}
	if err := m.TokenType.Validate(); err != nil {
		return errors.Wrap(err, "token type")
	}
	if err := m.Redeemer.Validate(); err != nil {
		return errors.Wrap(err, "redeemer")
	}
	if err := m.RefundParty.Validate(); err != nil {
		return errors.Wrap(err, "refund party")
	}
	if m.SwapAmount == 0 {
		return errors.Wrap(ErrInvalidAmount, "zero")
	}
	if len(m.DestinationData) > maxDestinationDataLimit {
		return errors.Wrapf(errors.ErrInput, "destination data longer than %d", maxDestinationDataLimit)
	}
	return nil
}

// closeRequest holds the addresses every closing operation names.
type closeRequest struct {
	swap        tokenswap.Address
	vault       tokenswap.Address
	authority   tokenswap.Address
	rentSponsor tokenswap.Address
}

func (r closeRequest) validate() error {
	if err := r.swap.Validate(); err != nil {
		return errors.Wrap(err, "swap")
	}
	if err := r.vault.Validate(); err != nil {
		return errors.Wrap(err, "vault")
	}
	if err := r.authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	if err := r.rentSponsor.Validate(); err != nil {
		return errors.Wrap(err, "rent sponsor")
	}
	return nil
}

// RedeemMsg releases the escrowed funds to the redeemer. It needs no
// signature, knowing the secret is enough.
type RedeemMsg struct {
	Swap        tokenswap.Address `json:"swap"`
	Vault       tokenswap.Address `json:"vault"`
	Authority   tokenswap.Address `json:"authority"`
	RentSponsor tokenswap.Address `json:"rent_sponsor"`
	Secret      [32]byte          `json:"secret"`
}

func (RedeemMsg) Path() string {
	return pathRedeemMsg
}

func (m *RedeemMsg) Validate() error {
	return m.request().validate()
}

func (m *RedeemMsg) request() closeRequest {
	return closeRequest{swap: m.Swap, vault: m.Vault, authority: m.Authority, rentSponsor: m.RentSponsor}
}

// RefundAfterExpiryMsg returns the escrowed funds to the refund party once
// the swap expired. It needs no signature.
type RefundAfterExpiryMsg struct {
	Swap        tokenswap.Address `json:"swap"`
	Vault       tokenswap.Address `json:"vault"`
	Authority   tokenswap.Address `json:"authority"`
	RentSponsor tokenswap.Address `json:"rent_sponsor"`
}

func (RefundAfterExpiryMsg) Path() string {
	return pathRefundAfterExpiryMsg
}

func (m *RefundAfterExpiryMsg) Validate() error {
	return m.request().validate()
}

func (m *RefundAfterExpiryMsg) request() closeRequest {
	return closeRequest{swap: m.Swap, vault: m.Vault, authority: m.Authority, rentSponsor: m.RentSponsor}
}

// RefundWithConsentMsg returns the escrowed funds to the refund party at
// any time. The redeemer must sign it.
type RefundWithConsentMsg struct {
	Swap        tokenswap.Address `json:"swap"`
	Vault       tokenswap.Address `json:"vault"`
	Authority   tokenswap.Address `json:"authority"`
	RentSponsor tokenswap.Address `json:"rent_sponsor"`
	Redeemer    tokenswap.Address `json:"redeemer"`
}

func (RefundWithConsentMsg) Path() string {
	return pathRefundWithConsentMsg
}

func (m *RefundWithConsentMsg) Validate() error {
	if err := m.Redeemer.Validate(); err != nil {
		return errors.Wrap(err, "redeemer")
	}
	return m.request().validate()
}

func (m *RefundWithConsentMsg) request() closeRequest {
	return closeRequest{swap: m.Swap, vault: m.Vault, authority: m.Authority, rentSponsor: m.RentSponsor}
}
