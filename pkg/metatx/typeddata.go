package metatx

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

const (
	ForwarderName    = "MinimalForwarder"
	ForwarderVersion = "1"
	primaryType      = "ForwardRequest"
)

// Domain is the EIP-712 domain of a deployed forwarder.
type Domain struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract common.Address
}

// ForwarderDomain returns the domain the MinimalForwarder contract verifies against.
func ForwarderDomain(chainID *big.Int, forwarder common.Address) Domain {
	return Domain{
		Name:              ForwarderName,
		Version:           ForwarderVersion,
		ChainID:           chainID,
		VerifyingContract: forwarder,
	}
}

var forwardRequestTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
	primaryType: {
		{Name: "from", Type: "address"},
		{Name: "to", Type: "address"},
		{Name: "value", Type: "uint256"},
		{Name: "gas", Type: "uint256"},
		{Name: "nonce", Type: "uint256"},
		{Name: "data", Type: "bytes"},
	},
}

// TypedData assembles the structured data that gets signed for req under domain.
func TypedData(domain Domain, req ForwardRequest) *apitypes.TypedData {
	return &apitypes.TypedData{
		Types:       forwardRequestTypes,
		PrimaryType: primaryType,
		Domain: apitypes.TypedDataDomain{
			Name:              domain.Name,
			Version:           domain.Version,
			ChainId:           (*math.HexOrDecimal256)(new(big.Int).Set(domain.ChainID)),
			VerifyingContract: domain.VerifyingContract.Hex(),
		},
		Message: apitypes.TypedDataMessage{
			"from":  req.From.Hex(),
			"to":    req.To.Hex(),
			"value": bigString(req.Value),
			"gas":   bigString(req.Gas),
			"nonce": bigString(req.Nonce),
			"data":  hexutil.Encode(req.Data),
		},
	}
}

// Hash returns the EIP-712 digest of req under domain.
func Hash(domain Domain, req ForwardRequest) ([]byte, error) {
	hash, _, err := apitypes.TypedDataAndHash(*TypedData(domain, req))
	if err != nil {
		return nil, fmt.Errorf("hash typed data: %w", err)
	}
	return hash, nil
}

// Recover returns the address that produced signature over req under domain.
func Recover(domain Domain, req ForwardRequest, signature []byte) (common.Address, error) {
	if len(signature) != crypto.SignatureLength {
		return common.Address{}, errors.New("signature must be 65 bytes")
	}
	hash, err := Hash(domain, req)
	if err != nil {
		return common.Address{}, err
	}

	sig := common.CopyBytes(signature)
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("recover signer: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

func bigString(x *big.Int) string {
	if x == nil {
		return "0"
	}
	return x.String()
}
