package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecutableAt(t *testing.T) {
	p := &Proposal{Deadline: 1_700_000_300}
	assert.Equal(t, uint64(1_700_003_900), p.ExecutableAt(3600))
	assert.Equal(t, uint64(1_700_000_300), p.ExecutableAt(0))
}

func TestExecutableAt_Saturates(t *testing.T) {
	p := &Proposal{Deadline: math.MaxUint64 - 10}
	assert.Equal(t, uint64(math.MaxUint64), p.ExecutableAt(3600))

	p = &Proposal{Deadline: 1}
	assert.Equal(t, uint64(math.MaxUint64), p.ExecutableAt(math.MaxUint64))
}

func TestParseVoteType(t *testing.T) {
	for in, want := range map[string]VoteType{"for": VoteFor, "AGAINST": VoteAgainst, " abstain ": VoteAbstain, "2": VoteAbstain} {
		got, err := ParseVoteType(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseVoteType("maybe")
	assert.Error(t, err)
}
