package htlc

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigurationDefault(t *testing.T) {
	conf, err := LoadConfiguration(store.MemStore())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfiguration(), *conf)
	assert.Equal(t, uint32(DefaultMaxDestinationData), conf.MaxDestinationData)
}

func TestInitializer(t *testing.T) {
	eth := tokenswap.NewAddress([]byte("eth"))
	ethJSON, err := json.Marshal(eth)
	require.NoError(t, err)

	cases := map[string]struct {
		genesis string
		want    Configuration
		wantErr *errors.Error
	}{
		"no configuration": {
			genesis: `{}`,
			want:    DefaultConfiguration(),
		},
		"deposits": {
			genesis: `{"htlc": {"deposit_token": ` + string(ethJSON) + `, "record_deposit": 5, "vault_deposit": 9}}`,
			want: Configuration{
				DepositToken:       eth,
				RecordDeposit:      5,
				VaultDeposit:       9,
				MaxDestinationData: DefaultMaxDestinationData,
			},
		},
		"deposit without token": {
			genesis: `{"htlc": {"record_deposit": 5}}`,
			wantErr: errors.ErrEmpty,
		},
		"destination data limit too high": {
			genesis: `{"htlc": {"max_destination_data": 1000000}}`,
			wantErr: errors.ErrInput,
		},
		"malformed": {
			genesis: `{"htlc": {"record_deposit": "many"}}`,
			wantErr: errors.ErrInput,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var opts tokenswap.Options
			require.NoError(t, json.Unmarshal([]byte(tc.genesis), &opts))

			db := store.MemStore()
			err := Initializer{}.FromGenesis(opts, db)
			require.True(t, tc.wantErr.Is(err), "%+v", err)
			if tc.wantErr != nil {
				return
			}
			conf, err := LoadConfiguration(db)
			require.NoError(t, err)
			assert.Equal(t, tc.want, *conf)
		})
	}
}
