package request

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/richardcmg7/dao-voting-platform/pkg/metatx"
)

// ForwardRequest carries every field as a string, the way wallets serialize it.
type ForwardRequest struct {
	From  string `json:"from" binding:"required,eth_addr"`
	To    string `json:"to" binding:"required,eth_addr"`
	Value string `json:"value" binding:"required,uint256"`
	Gas   string `json:"gas" binding:"required,uint256"`
	Nonce string `json:"nonce" binding:"required,uint256"`
	Data  string `json:"data" binding:"required,hexbytes"`
}

type RelayRequest struct {
	Request   ForwardRequest `json:"request" binding:"required"`
	Signature string         `json:"signature" binding:"required,hexbytes"`
}

// ToForwardRequest converts an already validated payload.
func (r *RelayRequest) ToForwardRequest() (metatx.ForwardRequest, []byte, error) {
	data, err := hexutil.Decode(r.Request.Data)
	if err != nil {
		return metatx.ForwardRequest{}, nil, err
	}
	sig, err := hexutil.Decode(r.Signature)
	if err != nil {
		return metatx.ForwardRequest{}, nil, err
	}
	return metatx.ForwardRequest{
		From:  common.HexToAddress(r.Request.From),
		To:    common.HexToAddress(r.Request.To),
		Value: decimalBig(r.Request.Value),
		Gas:   decimalBig(r.Request.Gas),
		Nonce: decimalBig(r.Request.Nonce),
		Data:  data,
	}, sig, nil
}

func decimalBig(s string) *big.Int {
	n, _ := new(big.Int).SetString(s, 10)
	return n
}
