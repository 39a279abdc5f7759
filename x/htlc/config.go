package htlc

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
)

const (
	optKey = "htlc"

	// DefaultMaxDestinationData is the destination data limit used when
	// none is configured.
	DefaultMaxDestinationData = 1024

	// maxDestinationDataLimit bounds the destination data of any message
	// regardless of the configuration.
	maxDestinationDataLimit = 64 << 10
)

var configKey = []byte(optKey)

// Configuration is set once in genesis. There is no update path.
type Configuration struct {
	// DepositToken is the token storage deposits are paid in.
	DepositToken tokenswap.Address `json:"deposit_token,omitempty"`
	// RecordDeposit is paid by the rent sponsor when a swap is opened and
	// returned to it when the swap is closed.
	RecordDeposit uint64 `json:"record_deposit,omitempty" binary:"fixed64"`
	// VaultDeposit is paid by the rent sponsor of the first swap of a
	// token type and is kept by the vault.
	VaultDeposit uint64 `json:"vault_deposit,omitempty" binary:"fixed64"`
	// MaxDestinationData is the maximum size of the opaque destination
	// data of an OpenMsg.
	MaxDestinationData uint32 `json:"max_destination_data,omitempty"`
}

var _ orm.Model = (*Configuration)(nil)

// DefaultConfiguration returns a configuration without deposits.
func DefaultConfiguration() Configuration {
	return Configuration{MaxDestinationData: DefaultMaxDestinationData}
}

// Validate ensures the deposits can be charged.
func (c *Configuration) Validate() error {
	if c.RecordDeposit > 0 || c.VaultDeposit > 0 {
		if err := c.DepositToken.Validate(); err != nil {
			return errors.Wrap(err, "deposit token")
		}
	}
	if c.MaxDestinationData > maxDestinationDataLimit {
		return errors.Wrapf(errors.ErrInput, "max destination data above %d", maxDestinationDataLimit)
	}
	return nil
}

func newConfigBucket() orm.ModelBucket {
	return orm.NewModelBucket("htlc_conf", &Configuration{}, cdc)
}

// LoadConfiguration returns the stored configuration or the default one.
func LoadConfiguration(db tokenswap.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	switch err := newConfigBucket().One(db, configKey, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		def := DefaultConfiguration()
		return &def, nil
	default:
		return nil, errors.Wrap(err, "configuration")
	}
}

// Initializer fulfils the Initializer interface to load the configuration
// from the genesis file
type Initializer struct{}

var _ tokenswap.Initializer = Initializer{}

// FromGenesis reads the configuration under the "htlc" key. Omitted
// fields keep their default value.
func (Initializer) FromGenesis(opts tokenswap.Options, kv tokenswap.KVStore) error {
	conf := DefaultConfiguration()
	if err := opts.ReadOptions(optKey, &conf); err != nil {
		return err
	}
	if err := conf.Validate(); err != nil {
		return errors.Wrap(err, "htlc configuration")
	}
	return newConfigBucket().Put(kv, configKey, &conf)
}
