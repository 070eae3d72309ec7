package handler

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Health   *HealthHandler
	Relay    *RelayHandler
	Execute  *ExecuteHandler
	Proposal *ProposalHandler
}
