package tokenswap_test

import (
	"testing"

	"github.com/iov-one/tokenswap"
	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	tokenswap.GitCommit = ""
	assert.Equal(t, "v0.1.0-dev", tokenswap.Version())

	tokenswap.GitCommit = "12345678"
	assert.Equal(t, "v0.1.0-dev 12345678", tokenswap.Version())
	tokenswap.GitCommit = ""
}
