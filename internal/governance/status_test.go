package governance

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/richardcmg7/dao-voting-platform/internal/model"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name     string
		executed bool
		now      uint64
		votesFor int64
		against  int64
		want     model.ProposalStatus
	}{
		{"executed wins over everything", true, deadline - 1, 0, 5, model.StatusExecuted},
		{"open voting", false, deadline - 1, 10, 0, model.StatusActive},
		{"closed with majority", false, deadline, 2, 1, model.StatusApproved},
		{"closed tie", false, deadline + 1, 1, 1, model.StatusRejected},
		{"closed losing", false, deadline + 1, 0, 1, model.StatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := readyProposal()
			p.Executed = tt.executed
			p.VotesFor = big.NewInt(tt.votesFor)
			p.VotesAgainst = big.NewInt(tt.against)
			assert.Equal(t, tt.want, Status(p, tt.now))
		})
	}
}

func TestWeights(t *testing.T) {
	p := readyProposal()
	p.VotesFor, p.VotesAgainst, p.VotesAbstain = big.NewInt(0), big.NewInt(0), big.NewInt(0)
	_, ok := Weights(p)
	assert.False(t, ok)

	p.VotesFor, p.VotesAgainst, p.VotesAbstain = big.NewInt(1), big.NewInt(1), big.NewInt(1)
	w, ok := Weights(p)
	assert.True(t, ok)
	assert.Equal(t, "33.33", w.For.StringFixed(2))
	assert.Equal(t, "33.33", w.Abstain.StringFixed(2))

	p.VotesFor, p.VotesAgainst, p.VotesAbstain = big.NewInt(3), big.NewInt(1), nil
	w, ok = Weights(p)
	assert.True(t, ok)
	assert.Equal(t, "75", w.For.String())
	assert.Equal(t, "25", w.Against.String())
	assert.True(t, w.Abstain.IsZero())
}

func TestFormatEther(t *testing.T) {
	oneAndHalf, _ := new(big.Int).SetString("1500000000000000000", 10)
	assert.Equal(t, "1.5", FormatEther(oneAndHalf))
	assert.Equal(t, "0", FormatEther(nil))
}
