package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richardcmg7/dao-voting-platform/internal/model"
	"github.com/richardcmg7/dao-voting-platform/pkg/config"
)

const anvilKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func TestOpenSession_Unconfigured(t *testing.T) {
	s, err := OpenSession(context.Background(), config.ChainConfig{RpcUrl: "http://127.0.0.1:8545"})
	require.NoError(t, err)
	assert.False(t, s.CanRelay())
	assert.False(t, s.CanExecute())
	assert.False(t, s.CanRead())
	s.Close()
}

func TestOpenSession_ReadOnlyWithoutKey(t *testing.T) {
	s, err := OpenSession(context.Background(), config.ChainConfig{
		RpcUrl:           "http://127.0.0.1:8545",
		DAOAddress:       "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		ForwarderAddress: "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512",
	})
	require.NoError(t, err)
	defer s.Close()

	assert.True(t, s.CanRead())
	assert.False(t, s.CanRelay())
	assert.False(t, s.CanExecute())
	assert.Nil(t, s.TimeMachine)
}

func TestOpenSession_FullyConfigured(t *testing.T) {
	s, err := OpenSession(context.Background(), config.ChainConfig{
		RpcUrl:            "http://127.0.0.1:8545",
		RelayerPrivateKey: anvilKey,
		DAOAddress:        "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		ForwarderAddress:  "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512",
		AutoAdvanceTime:   true,
	})
	require.NoError(t, err)
	defer s.Close()

	assert.True(t, s.CanRelay())
	assert.True(t, s.CanExecute())
	assert.NotNil(t, s.TimeMachine)
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", s.Relayer.Hex())
}

func TestOpenSession_Malformed(t *testing.T) {
	_, err := OpenSession(context.Background(), config.ChainConfig{
		RpcUrl:     "http://127.0.0.1:8545",
		DAOAddress: "0x1234",
	})
	assert.ErrorContains(t, err, "dao_address")

	_, err = OpenSession(context.Background(), config.ChainConfig{
		RpcUrl:            "http://127.0.0.1:8545",
		RelayerPrivateKey: "not-hex",
	})
	assert.Error(t, err)
}

func TestPackVote(t *testing.T) {
	data, err := PackVote(1, model.VoteAgainst)
	require.NoError(t, err)
	require.Len(t, data, 4+32+32)

	method, err := DAOABI.MethodById(data[:4])
	require.NoError(t, err)
	assert.Equal(t, "vote", method.Name)

	args, err := method.Inputs.Unpack(data[4:])
	require.NoError(t, err)
	assert.Equal(t, uint8(1), args[1])
}

func TestReadOnlyBindingRefusesWrites(t *testing.T) {
	client, err := Dial(context.Background(), "http://127.0.0.1:8545")
	require.NoError(t, err)
	defer client.Close()

	dao := NewDAOContract([20]byte{1}, client, nil)
	_, err = dao.ExecuteProposal(context.Background(), 1)
	assert.ErrorIs(t, err, ErrReadOnly)
}
