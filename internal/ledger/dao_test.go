package ledger

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tuple() *proposalTuple {
	return &proposalTuple{
		Id:           big.NewInt(4),
		Amount:       big.NewInt(1e18),
		Deadline:     big.NewInt(1_700_000_300),
		Description:  "grant",
		VotesFor:     big.NewInt(5),
		VotesAgainst: new(big.Int),
		VotesAbstain: new(big.Int),
		CreatedAt:    big.NewInt(1_700_000_000),
	}
}

func TestProposalTuple_Converts(t *testing.T) {
	p, err := tuple().proposal()
	require.NoError(t, err)
	assert.Equal(t, uint64(4), p.ID)
	assert.Equal(t, uint64(1_700_000_300), p.Deadline)
	assert.Equal(t, uint64(1_700_000_000), p.CreatedAt)
	assert.Equal(t, "grant", p.Description)
}

func TestProposalTuple_RejectsOversizedValues(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 64) // 2^64 would truncate to 0

	for name, mutate := range map[string]func(*proposalTuple){
		"proposal id":        func(tp *proposalTuple) { tp.Id = huge },
		"proposal deadline":  func(tp *proposalTuple) { tp.Deadline = huge },
		"proposal createdAt": func(tp *proposalTuple) { tp.CreatedAt = huge },
	} {
		t.Run(name, func(t *testing.T) {
			tp := tuple()
			mutate(tp)
			_, err := tp.proposal()
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
			assert.Contains(t, err.Error(), "does not fit in uint64")
		})
	}
}

func TestToUint64(t *testing.T) {
	v, err := toUint64("proposalCount", big.NewInt(12))
	require.NoError(t, err)
	assert.Equal(t, uint64(12), v)

	_, err = toUint64("proposalCount", big.NewInt(-1))
	assert.Error(t, err)

	_, err = toUint64("EXECUTION_DELAY", nil)
	assert.Error(t, err)
}
