package event

// Topics pushed to the message queue so front ends can refresh on change instead of polling.
const (
	TopicVoteRelayed      = "dao_events_vote_relayed"
	TopicProposalExecuted = "dao_events_proposal_executed"
)

// VoteRelayed is published after the forwarder confirmed a meta-transaction.
type VoteRelayed struct {
	From        string `json:"from"`
	Nonce       string `json:"nonce"`
	TxHash      string `json:"tx_hash"`
	BlockNumber uint64 `json:"block_number"`
}

// ProposalExecuted is published after executeProposal was mined.
type ProposalExecuted struct {
	ProposalID  uint64 `json:"proposal_id"`
	TxHash      string `json:"tx_hash"`
	BlockNumber uint64 `json:"block_number"`
	Source      string `json:"source"` // "execute" or "sweep"
}
