package htlc

import (
	"encoding/hex"
	"strconv"

	"github.com/iov-one/tokenswap"
	"github.com/tendermint/tendermint/libs/common"
)

// Tag keys of all events. Transactions can be searched by them.
const (
	TagAction      = "htlc.action"
	TagSwap        = "htlc.swap"
	TagTokenType   = "htlc.token_type"
	TagRedeemer    = "htlc.redeemer"
	TagRefundParty = "htlc.refund_party"
	TagSecretHash  = "htlc.secret_hash"
	TagSwapAmount  = "htlc.swap_amount"
	TagTimelock    = "htlc.timelock"
	TagExpiryPoint = "htlc.expiry_point"
	TagSecret      = "htlc.secret"
	TagFunder      = "htlc.funder"

	// TagDestinationData holds the hex encoded destination data. It is
	// present only when the data is not empty.
	TagDestinationData = "htlc.destination_data"
)

var (
	_ tokenswap.Event = (*Opened)(nil)
	_ tokenswap.Event = (*Redeemed)(nil)
	_ tokenswap.Event = (*RefundedAfterExpiry)(nil)
	_ tokenswap.Event = (*InstantRefunded)(nil)
)

// Terms are the swap parameters every event carries.
type Terms struct {
	Swap        tokenswap.Address `json:"swap"`
	TokenType   tokenswap.Address `json:"token_type"`
	Redeemer    tokenswap.Address `json:"redeemer"`
	RefundParty tokenswap.Address `json:"refund_party"`
	SecretHash  [32]byte          `json:"secret_hash"`
	SwapAmount  uint64            `json:"swap_amount"`
	Timelock    uint64            `json:"timelock"`
}

func termsOf(addr tokenswap.Address, s *Swap) Terms {
	return Terms{
		Swap:        addr,
		TokenType:   s.TokenType,
		Redeemer:    s.Redeemer,
		RefundParty: s.RefundParty,
		SecretHash:  s.SecretHash,
		SwapAmount:  s.SwapAmount,
		Timelock:    s.Timelock,
	}
}

func (t Terms) tags(action string) []common.KVPair {
	return []common.KVPair{
		tokenswap.Tag(TagAction, []byte(action)),
		tokenswap.AddressTag(TagSwap, t.Swap),
		tokenswap.AddressTag(TagTokenType, t.TokenType),
		tokenswap.AddressTag(TagRedeemer, t.Redeemer),
		tokenswap.AddressTag(TagRefundParty, t.RefundParty),
		tokenswap.Tag(TagSecretHash, []byte(hex.EncodeToString(t.SecretHash[:]))),
		uintTag(TagSwapAmount, t.SwapAmount),
		uintTag(TagTimelock, t.Timelock),
	}
}

func uintTag(key string, n uint64) common.KVPair {
	return tokenswap.Tag(key, []byte(strconv.FormatUint(n, 10)))
}

// Opened is emitted when funds are locked.
type Opened struct {
	Terms
	ExpiryPoint     uint64            `json:"expiry_point"`
	Funder          tokenswap.Address `json:"funder"`
	DestinationData []byte            `json:"destination_data,omitempty"`
}

func (Opened) EventKind() string { return "opened" }

func (e Opened) Tags() []common.KVPair {
	tags := append(e.tags(e.EventKind()),
		uintTag(TagExpiryPoint, e.ExpiryPoint),
		tokenswap.AddressTag(TagFunder, e.Funder))
	if len(e.DestinationData) > 0 {
		tags = append(tags, tokenswap.Tag(TagDestinationData, []byte(hex.EncodeToString(e.DestinationData))))
	}
	return tags
}

// Redeemed is emitted when the redeemer receives the funds. It reveals
// the secret so that the counterpart swap can be redeemed as well.
type Redeemed struct {
	Terms
	Secret [32]byte `json:"secret"`
}

func (Redeemed) EventKind() string { return "redeemed" }

func (e Redeemed) Tags() []common.KVPair {
	return append(e.tags(e.EventKind()),
		tokenswap.Tag(TagSecret, []byte(hex.EncodeToString(e.Secret[:]))))
}

// RefundedAfterExpiry is emitted when an expired swap is refunded.
type RefundedAfterExpiry struct {
	Terms
	ExpiryPoint uint64 `json:"expiry_point"`
}

func (RefundedAfterExpiry) EventKind() string { return "refunded_after_expiry" }

func (e RefundedAfterExpiry) Tags() []common.KVPair {
	return append(e.tags(e.EventKind()), uintTag(TagExpiryPoint, e.ExpiryPoint))
}

// InstantRefunded is emitted when the redeemer consented to a refund.
type InstantRefunded struct {
	Terms
}

func (InstantRefunded) EventKind() string { return "instant_refunded" }

func (e InstantRefunded) Tags() []common.KVPair {
	return e.tags(e.EventKind())
}
