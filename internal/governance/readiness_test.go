package governance

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/richardcmg7/dao-voting-platform/internal/model"
)

const (
	deadline = uint64(1_700_000_300)
	delay    = uint64(60)
)

func readyProposal() *model.Proposal {
	return &model.Proposal{
		ID:           1,
		Amount:       big.NewInt(1_000),
		Deadline:     deadline,
		VotesFor:     big.NewInt(3),
		VotesAgainst: big.NewInt(1),
		VotesAbstain: big.NewInt(0),
	}
}

func TestEvaluate_AllConditionsHold(t *testing.T) {
	r := Evaluate(readyProposal(), deadline+delay, delay, big.NewInt(1_000))
	assert.True(t, r.Executable())
	assert.Empty(t, r.Blockers())
	assert.Equal(t, "executable", r.String())
}

func TestEvaluate_EachConditionFalseInIsolation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(p *model.Proposal)
		now      uint64
		treasury *big.Int
		blocker  string
	}{
		{
			name:     "already executed",
			mutate:   func(p *model.Proposal) { p.Executed = true },
			now:      deadline + delay,
			treasury: big.NewInt(1_000),
			blocker:  CondNotExecuted,
		},
		{
			name:     "before deadline",
			mutate:   func(p *model.Proposal) {},
			now:      deadline - 1,
			treasury: big.NewInt(1_000),
			blocker:  CondPastDeadline,
		},
		{
			name:     "past deadline but inside delay",
			mutate:   func(p *model.Proposal) {},
			now:      deadline + delay - 1,
			treasury: big.NewInt(1_000),
			blocker:  CondPastDelay,
		},
		{
			name:     "tie is not a majority",
			mutate:   func(p *model.Proposal) { p.VotesAgainst = big.NewInt(3) },
			now:      deadline + delay,
			treasury: big.NewInt(1_000),
			blocker:  CondMajority,
		},
		{
			name:     "treasury short by one wei",
			mutate:   func(p *model.Proposal) {},
			now:      deadline + delay,
			treasury: big.NewInt(999),
			blocker:  CondFunds,
		},
		{
			name:     "nil treasury counts as zero",
			mutate:   func(p *model.Proposal) {},
			now:      deadline + delay,
			treasury: nil,
			blocker:  CondFunds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := readyProposal()
			tt.mutate(p)
			r := Evaluate(p, tt.now, delay, tt.treasury)

			assert.False(t, r.Executable())
			want := tt.blocker
			if tt.blocker == CondPastDeadline {
				// being before the deadline is also being before deadline+delay
				assert.Equal(t, []string{CondPastDeadline, CondPastDelay}, r.Blockers())
				return
			}
			assert.Equal(t, []string{want}, r.Blockers())
		})
	}
}

func TestEvaluate_ZeroDelayStillRequiresDeadline(t *testing.T) {
	p := readyProposal()
	r := Evaluate(p, deadline, 0, big.NewInt(1_000))
	assert.True(t, r.Executable())
}

func TestEvaluate_HugeDelayDoesNotWrap(t *testing.T) {
	p := readyProposal()
	r := Evaluate(p, deadline+delay, math.MaxUint64-deadline+1, big.NewInt(1_000))
	assert.True(t, r.PastDeadline)
	assert.False(t, r.PastDelay)
	assert.False(t, r.Executable())
}

func TestConditions_Rendering(t *testing.T) {
	r := Evaluate(readyProposal(), deadline-10, delay, big.NewInt(0))
	conds := r.Conditions()

	assert.Len(t, conds, 5)
	assert.Equal(t, "OK: Proposal not executed yet", conds[0].Status())
	assert.Equal(t, "WAIT: Voting period still active", conds[1].Status())
	assert.Equal(t, "WAIT: Execution delay not reached", conds[2].Status())
	assert.Equal(t, "OK: Proposal approved", conds[3].Status())
	assert.Equal(t, "WAIT: DAO balance is too low", conds[4].Status())
}

// Proposal created at t0 with a 300s voting window and a 60s execution delay.
func TestEvaluate_Timeline(t *testing.T) {
	t0 := uint64(1_700_000_000)
	p := readyProposal()
	p.Deadline = t0 + 300
	treasury := big.NewInt(5_000)

	assert.False(t, Evaluate(p, t0+200, delay, treasury).Executable(), "voting still open")

	r := Evaluate(p, t0+305, delay, treasury)
	assert.True(t, r.PastDeadline)
	assert.False(t, r.Executable(), "delay not elapsed")

	assert.True(t, Evaluate(p, t0+365, delay, treasury).Executable())

	p.Executed = true
	assert.False(t, Evaluate(p, t0+365, delay, treasury).Executable())
}
