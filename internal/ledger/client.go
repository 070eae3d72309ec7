package ledger

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// ErrReadOnly is returned by state-changing calls on a binding that has no signing key.
var ErrReadOnly = errors.New("ledger binding has no signing key")

// Client is one RPC connection. It implements Clock and TimeMachine.
type Client struct {
	rpc *rpc.Client
	eth *ethclient.Client

	mu      sync.Mutex
	chainID *big.Int
}

// Dial does not touch the network for HTTP endpoints; failures surface on the first call.
func Dial(ctx context.Context, rpcURL string) (*Client, error) {
	rc, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", rpcURL, err)
	}
	return &Client{rpc: rc, eth: ethclient.NewClient(rc)}, nil
}

func (c *Client) Close() { c.rpc.Close() }

// ChainID is fetched once and then served from memory.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.chainID == nil {
		id, err := c.eth.ChainID(ctx)
		if err != nil {
			return nil, fmt.Errorf("get chain id: %w", err)
		}
		c.chainID = id
	}
	return new(big.Int).Set(c.chainID), nil
}

// Now returns the timestamp of the latest block.
func (c *Client) Now(ctx context.Context) (uint64, error) {
	head, err := c.eth.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("get latest block: %w", err)
	}
	return head.Time, nil
}

func (c *Client) BalanceAt(ctx context.Context, addr common.Address) (*big.Int, error) {
	return c.eth.BalanceAt(ctx, addr, nil)
}

// AdvanceTime uses the hardhat/anvil dev RPC methods and mines a block so the new time is visible.
func (c *Client) AdvanceTime(ctx context.Context, seconds uint64) error {
	if err := c.rpc.CallContext(ctx, nil, "evm_increaseTime", seconds); err != nil {
		return fmt.Errorf("evm_increaseTime: %w", err)
	}
	if err := c.rpc.CallContext(ctx, nil, "evm_mine"); err != nil {
		return fmt.Errorf("evm_mine: %w", err)
	}
	return nil
}

// Transactor signs and submits transactions for one account. Submissions are serialized so
// concurrent requests do not pick the same account nonce; waiting for receipts is not.
type Transactor struct {
	client *Client
	key    *ecdsa.PrivateKey
	from   common.Address

	// bounds submission plus confirmation of one transaction; zero means the caller's ctx only
	timeout time.Duration

	sendMu sync.Mutex
}

func NewTransactor(client *Client, hexKey string) (*Transactor, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse signing key: %w", err)
	}
	return &Transactor{client: client, key: key, from: crypto.PubkeyToAddress(key.PublicKey)}, nil
}

func (t *Transactor) From() common.Address { return t.from }

func (t *Transactor) send(ctx context.Context, value *big.Int, submit func(*bind.TransactOpts) (*types.Transaction, error)) (*Receipt, error) {
	if t == nil {
		return nil, ErrReadOnly
	}
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	chainID, err := t.client.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := bind.NewKeyedTransactorWithChainID(t.key, chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	opts.Value = value

	t.sendMu.Lock()
	tx, err := submit(opts)
	t.sendMu.Unlock()
	if err != nil {
		return nil, err
	}

	receipt, err := bind.WaitMined(ctx, t.client.eth, tx)
	if err != nil {
		return nil, fmt.Errorf("wait for %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("transaction %s reverted", receipt.TxHash.Hex())
	}
	return &Receipt{TxHash: receipt.TxHash, BlockNumber: receipt.BlockNumber.Uint64()}, nil
}
