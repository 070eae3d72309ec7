package ledger

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/richardcmg7/dao-voting-platform/pkg/metatx"
)

// ForwarderContract is the go-ethereum binding of MinimalForwarder.
type ForwarderContract struct {
	address  common.Address
	contract *bind.BoundContract
	tx       *Transactor
}

var _ Forwarder = (*ForwarderContract)(nil)

func NewForwarderContract(address common.Address, client *Client, tx *Transactor) *ForwarderContract {
	return &ForwarderContract{
		address:  address,
		contract: bind.NewBoundContract(address, ForwarderABI, client.eth, client.eth, client.eth),
		tx:       tx,
	}
}

func (f *ForwarderContract) Address() common.Address { return f.address }

func (f *ForwarderContract) GetNonce(ctx context.Context, from common.Address) (*big.Int, error) {
	var out []interface{}
	if err := f.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getNonce", from); err != nil {
		return nil, fmt.Errorf("getNonce: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("getNonce returned no data")
	}
	n, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("getNonce: expected uint256, got %T", out[0])
	}
	return n, nil
}

// Execute submits the signed request. The forwarder itself checks signature and nonce;
// a mismatch reverts and comes back as an error here.
func (f *ForwarderContract) Execute(ctx context.Context, req metatx.ForwardRequest, signature []byte) (*Receipt, error) {
	return f.tx.send(ctx, nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return f.contract.Transact(opts, "execute", req, signature)
	})
}
