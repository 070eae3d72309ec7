package cmd

import (
	"context"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/richardcmg7/dao-voting-platform/internal/ledger"
	"github.com/richardcmg7/dao-voting-platform/pkg/config"
)

// parseEther converts a decimal ETH amount ("0.5") to wei.
func parseEther(s string) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid ETH amount %q: %w", s, err)
	}
	wei := d.Shift(18)
	if !wei.IsInteger() || wei.Sign() <= 0 {
		return nil, fmt.Errorf("invalid ETH amount %q: must be positive with at most 18 decimals", s)
	}
	return wei.BigInt(), nil
}

// signingDAO opens a session that signs with the caller's key and returns the concrete binding,
// which carries the member-only calls.
func signingDAO(ctx context.Context) (*ledger.Session, *ledger.DAOContract) {
	hexKey, err := privateKey()
	if err != nil {
		fail("%v", err)
	}
	session, err := ledger.OpenSession(ctx, config.ChainConfig{
		RpcUrl:            rpcURL,
		RelayerPrivateKey: hexKey,
		DAOAddress:        daoAddr,
		TxTimeout:         config.Global.Chain.TxTimeout,
	})
	if err != nil {
		fail("连接链失败: %v", err)
	}
	dao, ok := session.DAO.(*ledger.DAOContract)
	if !ok {
		session.Close()
		fail("DAO address not configured (--dao or chain.dao_address)")
	}
	return session, dao
}
