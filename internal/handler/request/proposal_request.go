package request

type ExecuteProposalRequest struct {
	ProposalID *uint64 `json:"proposalId" binding:"required,gte=1"`
	DebugOnly  bool    `json:"debugOnly"`
}

type AccountQuery struct {
	Account string `form:"account" binding:"omitempty,eth_addr"`
}
