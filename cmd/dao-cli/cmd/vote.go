package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/richardcmg7/dao-voting-platform/internal/handler/request"
	"github.com/richardcmg7/dao-voting-platform/internal/ledger"
	"github.com/richardcmg7/dao-voting-platform/internal/model"
	"github.com/richardcmg7/dao-voting-platform/pkg/config"
	"github.com/richardcmg7/dao-voting-platform/pkg/metatx"
)

type relayResponse struct {
	Success     bool   `json:"success"`
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
}

var voteCmd = &cobra.Command{
	Use:   "vote",
	Short: "免 Gas 投票 (Gasless vote)",
	Long: `Builds vote(proposal, type), signs it as an EIP-712 forward request with your key
and submits it to the relay. The relayer pays the gas.`,
	Run: func(cmd *cobra.Command, args []string) {
		proposalID, _ := cmd.Flags().GetUint64("proposal")
		typeStr, _ := cmd.Flags().GetString("type")

		voteType, err := model.ParseVoteType(typeStr)
		if err != nil {
			fail("%v", err)
		}
		if proposalID == 0 {
			fail("--proposal is required")
		}

		hexKey, err := privateKey()
		if err != nil {
			fail("%v", err)
		}
		signer, err := metatx.NewKeySignerFromHex(hexKey)
		if err != nil {
			fail("%v", err)
		}

		ctx := context.Background()
		// Only reads happen on the ledger here: the session gets no key.
		session, err := ledger.OpenSession(ctx, config.ChainConfig{RpcUrl: rpcURL, ForwarderAddress: fwdAddr})
		if err != nil {
			fail("连接链失败: %v", err)
		}
		defer session.Close()
		if session.Forwarder == nil {
			fail("forwarder address not configured (--forwarder or chain.forwarder_address)")
		}

		data, err := ledger.PackVote(proposalID, voteType)
		if err != nil {
			fail("encode vote: %v", err)
		}
		partial, err := metatx.BuildRequest(daoAddr, data)
		if err != nil {
			fail("%v", err)
		}

		signed, err := metatx.SignRequest(ctx, signer, session.Forwarder, chainIDFunc(session.ChainID), partial)
		if err != nil {
			fail("签名失败: %v", err)
		}

		// self-check before spending the relayer's gas
		chainID, err := session.ChainID(ctx)
		if err != nil {
			fail("%v", err)
		}
		recovered, err := metatx.Recover(metatx.ForwarderDomain(chainID, session.Forwarder.Address()), signed.Request, signed.Signature)
		if err != nil || recovered != signed.Request.From {
			fail("signature self-check failed: recovered %s, want %s (%v)", recovered.Hex(), signed.Request.From.Hex(), err)
		}

		fmt.Println("\n================ 待中继投票 ================")
		fmt.Printf("Proposal:   %d\n", proposalID)
		fmt.Printf("Vote:       %s\n", voteType)
		fmt.Printf("From:       %s\n", signed.Request.From.Hex())
		fmt.Printf("Nonce:      %s\n", signed.Request.Nonce)
		fmt.Println("============================================")

		var res relayResponse
		if err := callAPI(ctx, http.MethodPost, "/api/v1/relay", relayPayload(signed), &res); err != nil {
			fail("中继失败: %v", err)
		}
		fmt.Printf("\n✅ 投票已上链! tx %s (block %d)\n", res.TxHash, res.BlockNumber)
	},
}

func relayPayload(s *metatx.SignedRequest) request.RelayRequest {
	r := s.Request
	return request.RelayRequest{
		Request: request.ForwardRequest{
			From:  r.From.Hex(),
			To:    r.To.Hex(),
			Value: r.Value.String(),
			Gas:   r.Gas.String(),
			Nonce: r.Nonce.String(),
			Data:  hexutil.Encode(r.Data),
		},
		Signature: hexutil.Encode(s.Signature),
	}
}

func init() {
	rootCmd.AddCommand(voteCmd)
	voteCmd.Flags().Uint64("proposal", 0, "proposal id")
	voteCmd.Flags().String("type", "for", "for, against or abstain")
	addKeyFlag(voteCmd)
}
