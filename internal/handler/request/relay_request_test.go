package request

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelayRequest_ToForwardRequest(t *testing.T) {
	r := RelayRequest{
		Request: ForwardRequest{
			From:  "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
			To:    "0x5FbDB2315678afecb367f032d93F642f64180aa3",
			Value: "0",
			Gas:   "2000000",
			Nonce: "3",
			Data:  "0xdeadbeef",
		},
		Signature: "0x" + "11" + "22",
	}

	fwd, sig, err := r.ToForwardRequest()
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), fwd.From)
	assert.Equal(t, int64(2_000_000), fwd.Gas.Int64())
	assert.Equal(t, int64(3), fwd.Nonce.Int64())
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, fwd.Data)
	assert.Equal(t, []byte{0x11, 0x22}, sig)
}

func TestRelayRequest_EmptyData(t *testing.T) {
	r := RelayRequest{Request: ForwardRequest{Value: "0", Gas: "0", Nonce: "0", Data: "0x"}, Signature: "0x"}
	fwd, sig, err := r.ToForwardRequest()
	require.NoError(t, err)
	assert.Empty(t, fwd.Data)
	assert.Empty(t, sig)
}
