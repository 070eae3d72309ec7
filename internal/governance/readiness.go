// Package governance holds the proposal rules shared by display, single execution and batch sweeps.
// Nothing else in the module recomputes readiness.
package governance

import (
	"fmt"
	"math/big"

	"github.com/richardcmg7/dao-voting-platform/internal/model"
)

// Condition names, in evaluation order.
const (
	CondNotExecuted  = "not_executed"
	CondPastDeadline = "past_deadline"
	CondPastDelay    = "past_execution_delay"
	CondMajority     = "vote_majority"
	CondFunds        = "sufficient_funds"
)

// Condition is one readiness sub-check with a human-readable explanation.
type Condition struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Status renders the condition the way operators read it in diagnostics.
func (c Condition) Status() string {
	if c.Passed {
		return "OK: " + c.Detail
	}
	return "WAIT: " + c.Detail
}

// Readiness is the evaluated predicate for one proposal at one ledger time.
type Readiness struct {
	NotExecuted  bool
	PastDeadline bool
	PastDelay    bool
	HasMajority  bool
	HasFunds     bool
}

// Evaluate computes every sub-condition. treasury may be nil, which counts as zero.
func Evaluate(p *model.Proposal, now, executionDelay uint64, treasury *big.Int) Readiness {
	return Readiness{
		NotExecuted:  !p.Executed,
		PastDeadline: now >= p.Deadline,
		PastDelay:    now >= p.ExecutableAt(executionDelay),
		HasMajority:  cmp(p.VotesFor, p.VotesAgainst) > 0,
		HasFunds:     cmp(treasury, p.Amount) >= 0,
	}
}

// Executable is the aggregate: all five conditions hold.
func (r Readiness) Executable() bool {
	return r.NotExecuted && r.PastDeadline && r.PastDelay && r.HasMajority && r.HasFunds
}

// Conditions lists the sub-checks in a fixed order.
func (r Readiness) Conditions() []Condition {
	return []Condition{
		describe(CondNotExecuted, r.NotExecuted, "Proposal not executed yet", "Proposal already executed"),
		describe(CondPastDeadline, r.PastDeadline, "Voting period ended", "Voting period still active"),
		describe(CondPastDelay, r.PastDelay, "Execution delay passed", "Execution delay not reached"),
		describe(CondMajority, r.HasMajority, "Proposal approved", "Proposal lacks majority"),
		describe(CondFunds, r.HasFunds, "DAO has enough funds", "DAO balance is too low"),
	}
}

// Blockers returns the names of the failing conditions.
func (r Readiness) Blockers() []string {
	var out []string
	for _, c := range r.Conditions() {
		if !c.Passed {
			out = append(out, c.Name)
		}
	}
	return out
}

func (r Readiness) String() string {
	if r.Executable() {
		return "executable"
	}
	return fmt.Sprintf("blocked by %v", r.Blockers())
}

func describe(name string, passed bool, onPass, onFail string) Condition {
	if passed {
		return Condition{Name: name, Passed: true, Detail: onPass}
	}
	return Condition{Name: name, Passed: false, Detail: onFail}
}

// cmp treats nil as zero.
func cmp(a, b *big.Int) int {
	return orZero(a).Cmp(orZero(b))
}

func orZero(x *big.Int) *big.Int {
	if x == nil {
		return new(big.Int)
	}
	return x
}
