package response

import (
	"github.com/richardcmg7/dao-voting-platform/internal/governance"
	"github.com/richardcmg7/dao-voting-platform/internal/service"
)

type RelayResponse struct {
	Ok
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
}

type ExecuteResponse struct {
	Ok
	ProposalID       uint64                 `json:"proposalId"`
	Executed         bool                   `json:"executed"`
	TxHash           *string                `json:"txHash"`
	CanExecuteBefore bool                   `json:"canExecuteBefore"`
	ServerTimestamp  uint64                 `json:"serverTimestamp"`
	ExecutionDelay   uint64                 `json:"executionDelay"`
	Deadline         uint64                 `json:"deadline"`
	Diagnostics      []string               `json:"diagnostics"`
	Conditions       []governance.Condition `json:"conditions"`
}

type SweepResponse struct {
	Ok
	Executed  []uint64             `json:"executed"`
	Errors    []service.SweepError `json:"errors"`
	Timestamp string               `json:"timestamp"`
}

type ProposalsResponse struct {
	Ok
	Proposals []service.ProposalView `json:"proposals"`
}

type TreasuryResponse struct {
	Ok
	*service.TreasuryView
}
