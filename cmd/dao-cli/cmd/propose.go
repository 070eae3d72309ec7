package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

var proposeCmd = &cobra.Command{
	Use:   "propose",
	Short: "创建提案 (Create a proposal)",
	Long:  `Creates a treasury transfer proposal. Only members holding enough of the treasury may propose.`,
	Run: func(cmd *cobra.Command, args []string) {
		recipient, _ := cmd.Flags().GetString("recipient")
		amountStr, _ := cmd.Flags().GetString("amount")
		duration, _ := cmd.Flags().GetDuration("duration")
		description, _ := cmd.Flags().GetString("description")

		if !common.IsHexAddress(recipient) {
			fail("--recipient must be an address")
		}
		amount, err := parseEther(amountStr)
		if err != nil {
			fail("%v", err)
		}
		if duration < time.Second {
			fail("--duration must be at least 1s")
		}

		ctx := context.Background()
		session, dao := signingDAO(ctx)
		defer session.Close()

		allowed, err := dao.CanCreateProposal(ctx, session.Relayer)
		if err != nil {
			fail("%v", err)
		}
		if !allowed {
			fail("%s cannot create proposals: fund the DAO first", session.Relayer.Hex())
		}

		receipt, err := dao.CreateProposal(ctx, common.HexToAddress(recipient), amount, uint64(duration.Seconds()), description)
		if err != nil {
			fail("创建提案失败: %v", err)
		}
		count, err := dao.ProposalCount(ctx)
		if err != nil {
			fail("%v", err)
		}
		fmt.Printf("✅ Proposal %d created: tx %s (block %d)\n", count, receipt.TxHash.Hex(), receipt.BlockNumber)
	},
}

func init() {
	rootCmd.AddCommand(proposeCmd)
	proposeCmd.Flags().String("recipient", "", "beneficiary address")
	proposeCmd.Flags().String("amount", "", "ETH to transfer, e.g. 0.5")
	proposeCmd.Flags().Duration("duration", 0, "voting period, e.g. 5m")
	proposeCmd.Flags().String("description", "", "proposal description")
	addKeyFlag(proposeCmd)
}
