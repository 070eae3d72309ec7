// Package metatx builds and signs MinimalForwarder requests (EIP-2771 meta-transactions).
package metatx

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// DefaultGas is the gas ceiling attached to every forwarded call.
const DefaultGas = 2_000_000

// ForwardRequest is the forwarder's request tuple. Field names match the ABI components
// so the struct can be passed to the contract binding as-is.
type ForwardRequest struct {
	From  common.Address
	To    common.Address
	Value *big.Int
	Gas   *big.Int
	Nonce *big.Int
	Data  []byte
}

// PartialRequest is a ForwardRequest before the signer has filled in From and Nonce.
type PartialRequest struct {
	To    common.Address
	Value *big.Int
	Gas   *big.Int
	Data  []byte
}

// BuildRequest describes a zero-value call of data against target.
func BuildRequest(target string, data []byte) (PartialRequest, error) {
	if !common.IsHexAddress(target) {
		return PartialRequest{}, fmt.Errorf("build request: %q is not an address", target)
	}
	return PartialRequest{
		To:    common.HexToAddress(target),
		Value: new(big.Int),
		Gas:   big.NewInt(DefaultGas),
		Data:  common.CopyBytes(data),
	}, nil
}

// Complete binds the partial request to a signer address and forwarder nonce.
func (p PartialRequest) Complete(from common.Address, nonce *big.Int) ForwardRequest {
	return ForwardRequest{
		From:  from,
		To:    p.To,
		Value: new(big.Int).Set(p.Value),
		Gas:   new(big.Int).Set(p.Gas),
		Nonce: new(big.Int).Set(nonce),
		Data:  common.CopyBytes(p.Data),
	}
}
