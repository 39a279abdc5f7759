package tokenswap

import (
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/swaptest/assert"
)

func TestAddressValidate(t *testing.T) {
	cases := map[string]struct {
		addr    Address
		wantErr *errors.Error
	}{
		"valid":     {addr: NewAddress([]byte("alice")), wantErr: nil},
		"empty":     {addr: nil, wantErr: errors.ErrEmpty},
		"too short": {addr: make(Address, 20), wantErr: errors.ErrInput},
		"too long":  {addr: make(Address, 33), wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.addr.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("want %q, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestAddressText(t *testing.T) {
	addr := NewAddress([]byte("bob"))

	raw := addr.String()
	if !strings.HasPrefix(raw, AddressHRP+"1") {
		t.Fatalf("unexpected text form: %q", raw)
	}
	parsed, err := ParseAddress(raw)
	assert.Nil(t, err)
	assert.Equal(t, addr, parsed)

	parsed, err = ParseAddress(hex.EncodeToString(addr))
	assert.Nil(t, err)
	assert.Equal(t, addr, parsed)

	_, err = ParseAddress("zz")
	assert.IsErr(t, errors.ErrInput, err)
	_, err = ParseAddress(AddressHRP + "1qqqqqq")
	assert.IsErr(t, errors.ErrInput, err)

	assert.Equal(t, "(nil)", Address(nil).String())
}

func TestAddressJSON(t *testing.T) {
	type holder struct {
		Owner Address `json:"owner"`
	}
	h := holder{Owner: NewAddress([]byte("carol"))}
	raw, err := json.Marshal(h)
	assert.Nil(t, err)

	var got holder
	assert.Nil(t, json.Unmarshal(raw, &got))
	assert.Equal(t, h, got)

	assert.Nil(t, json.Unmarshal([]byte(`{"owner": ""}`), &got))
	assert.Equal(t, Address(nil), got.Owner)

	err = json.Unmarshal([]byte(`{"owner": "not an address"}`), &got)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestAddressClone(t *testing.T) {
	a := NewAddress([]byte("dave"))
	b := a.Clone()
	assert.Equal(t, true, a.Equals(b))
	b[0]++
	assert.Equal(t, false, a.Equals(b))
	assert.Equal(t, Address(nil), Address(nil).Clone())
}
