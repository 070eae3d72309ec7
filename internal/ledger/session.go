package ledger

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/richardcmg7/dao-voting-platform/pkg/config"
)

// Session is the explicit set of ledger handles an operation may use. Components that are not
// configured stay nil, and each service decides which absences make it unusable.
type Session struct {
	Relayer     common.Address // zero unless Signing
	Signing     bool
	Clock       Clock
	ChainID     func(ctx context.Context) (*big.Int, error)
	DAO         DAO
	Forwarder   Forwarder
	TimeMachine TimeMachine // only set when auto time advance is enabled

	client *Client
}

// CanRelay reports whether meta-transactions can be forwarded.
func (s *Session) CanRelay() bool {
	return s != nil && s.Signing && s.Forwarder != nil
}

// CanExecute reports whether executeProposal can be submitted.
func (s *Session) CanExecute() bool {
	return s != nil && s.Signing && s.DAO != nil
}

// CanRead reports whether DAO state can be read.
func (s *Session) CanRead() bool {
	return s != nil && s.DAO != nil && s.Clock != nil
}

func (s *Session) Close() {
	if s != nil && s.client != nil {
		s.client.Close()
	}
}

// OpenSession wires the bindings described by cfg. Missing credentials or addresses are not an
// error; malformed ones are.
func OpenSession(ctx context.Context, cfg config.ChainConfig) (*Session, error) {
	s := &Session{}
	if cfg.RelayerPrivateKey == "" && cfg.DAOAddress == "" && cfg.ForwarderAddress == "" {
		return s, nil
	}

	client, err := Dial(ctx, cfg.RpcUrl)
	if err != nil {
		return nil, err
	}
	s.client = client
	s.Clock = client
	s.ChainID = client.ChainID

	var tx *Transactor
	if cfg.RelayerPrivateKey != "" {
		if tx, err = NewTransactor(client, cfg.RelayerPrivateKey); err != nil {
			client.Close()
			return nil, err
		}
		tx.timeout = cfg.TxTimeout
		s.Relayer = tx.From()
		s.Signing = true
	}

	if cfg.DAOAddress != "" {
		addr, err := parseAddress("dao_address", cfg.DAOAddress)
		if err != nil {
			client.Close()
			return nil, err
		}
		s.DAO = NewDAOContract(addr, client, tx)
	}

	if cfg.ForwarderAddress != "" {
		addr, err := parseAddress("forwarder_address", cfg.ForwarderAddress)
		if err != nil {
			client.Close()
			return nil, err
		}
		s.Forwarder = NewForwarderContract(addr, client, tx)
	}

	if cfg.AutoAdvanceTime {
		s.TimeMachine = client
	}
	return s, nil
}

func parseAddress(name, v string) (common.Address, error) {
	if !common.IsHexAddress(v) {
		return common.Address{}, fmt.Errorf("%s %q is not an address", name, v)
	}
	return common.HexToAddress(v), nil
}
