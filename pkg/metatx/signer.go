package metatx

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// Signer produces EIP-712 signatures for one account.
type Signer interface {
	Address(ctx context.Context) (common.Address, error)
	SignTypedData(ctx context.Context, data *apitypes.TypedData) ([]byte, error)
}

// NonceReader is the part of the forwarder the signer needs.
type NonceReader interface {
	Address() common.Address
	GetNonce(ctx context.Context, from common.Address) (*big.Int, error)
}

// ChainIDReader is satisfied by *ethclient.Client.
type ChainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// SignedRequest pairs a completed request with its signature. The two are only valid together.
type SignedRequest struct {
	Request   ForwardRequest
	Signature []byte
}

// SignRequest resolves the signer address, reads its current forwarder nonce and the chain id,
// and signs the completed request.
func SignRequest(ctx context.Context, signer Signer, forwarder NonceReader, chain ChainIDReader, partial PartialRequest) (*SignedRequest, error) {
	from, err := signer.Address(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve signer address: %w", err)
	}
	nonce, err := forwarder.GetNonce(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("get forwarder nonce: %w", err)
	}
	chainID, err := chain.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("get chain id: %w", err)
	}

	req := partial.Complete(from, nonce)
	domain := ForwarderDomain(chainID, forwarder.Address())

	sig, err := signer.SignTypedData(ctx, TypedData(domain, req))
	if err != nil {
		return nil, fmt.Errorf("sign forward request: %w", err)
	}
	return &SignedRequest{Request: req, Signature: sig}, nil
}

// KeySigner signs with an in-memory secp256k1 key.
type KeySigner struct {
	key *ecdsa.PrivateKey
}

func NewKeySigner(key *ecdsa.PrivateKey) *KeySigner {
	return &KeySigner{key: key}
}

// NewKeySignerFromHex accepts a hex private key with or without 0x.
func NewKeySignerFromHex(hexKey string) (*KeySigner, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return NewKeySigner(key), nil
}

func (s *KeySigner) Address(context.Context) (common.Address, error) {
	return crypto.PubkeyToAddress(s.key.PublicKey), nil
}

// SignTypedData returns a 65 byte signature with v in {27, 28}.
func (s *KeySigner) SignTypedData(_ context.Context, data *apitypes.TypedData) ([]byte, error) {
	hash, _, err := apitypes.TypedDataAndHash(*data)
	if err != nil {
		return nil, fmt.Errorf("hash typed data: %w", err)
	}
	sig, err := crypto.Sign(hash, s.key)
	if err != nil {
		return nil, err
	}
	// crypto.Sign yields v in {0, 1}; Solidity's ecrecover wants {27, 28}.
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}
