package ledger

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const daoABIJSON = `[
	{"type":"function","name":"proposalCount","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getProposal","stateMutability":"view",
	 "inputs":[{"name":"_proposalId","type":"uint256"}],
	 "outputs":[{"name":"","type":"tuple","components":[
		{"name":"id","type":"uint256"},
		{"name":"recipient","type":"address"},
		{"name":"amount","type":"uint256"},
		{"name":"deadline","type":"uint256"},
		{"name":"description","type":"string"},
		{"name":"votesFor","type":"uint256"},
		{"name":"votesAgainst","type":"uint256"},
		{"name":"votesAbstain","type":"uint256"},
		{"name":"executed","type":"bool"},
		{"name":"createdAt","type":"uint256"}]}]},
	{"type":"function","name":"canExecuteProposal","stateMutability":"view","inputs":[{"name":"_proposalId","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"executeProposal","stateMutability":"nonpayable","inputs":[{"name":"_proposalId","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"getUserVote","stateMutability":"view",
	 "inputs":[{"name":"_proposalId","type":"uint256"},{"name":"_user","type":"address"}],
	 "outputs":[{"name":"voted","type":"bool"},{"name":"voteType","type":"uint8"}]},
	{"type":"function","name":"vote","stateMutability":"nonpayable","inputs":[{"name":"_proposalId","type":"uint256"},{"name":"_voteType","type":"uint8"}],"outputs":[]},
	{"type":"function","name":"getUserBalance","stateMutability":"view","inputs":[{"name":"_user","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"totalBalance","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"fundDAO","stateMutability":"payable","inputs":[],"outputs":[]},
	{"type":"function","name":"createProposal","stateMutability":"nonpayable",
	 "inputs":[{"name":"_recipient","type":"address"},{"name":"_amount","type":"uint256"},{"name":"_duration","type":"uint256"},{"name":"_description","type":"string"}],
	 "outputs":[]},
	{"type":"function","name":"canCreateProposal","stateMutability":"view","inputs":[{"name":"_user","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"EXECUTION_DELAY","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

const forwarderABIJSON = `[
	{"type":"function","name":"getNonce","stateMutability":"view","inputs":[{"name":"from","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"execute","stateMutability":"payable",
	 "inputs":[
		{"name":"req","type":"tuple","components":[
			{"name":"from","type":"address"},
			{"name":"to","type":"address"},
			{"name":"value","type":"uint256"},
			{"name":"gas","type":"uint256"},
			{"name":"nonce","type":"uint256"},
			{"name":"data","type":"bytes"}]},
		{"name":"signature","type":"bytes"}],
	 "outputs":[{"name":"","type":"bool"},{"name":"","type":"bytes"}]}
]`

var (
	DAOABI       = mustParseABI(daoABIJSON)
	ForwarderABI = mustParseABI(forwarderABIJSON)
)

func mustParseABI(abiJSON string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		panic("failed to parse ABI: " + err.Error())
	}
	return parsed
}
