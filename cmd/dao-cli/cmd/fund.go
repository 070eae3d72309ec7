package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/richardcmg7/dao-voting-platform/internal/governance"
)

var fundCmd = &cobra.Command{
	Use:   "fund",
	Short: "向 DAO 金库存入 ETH (Fund the treasury)",
	Run: func(cmd *cobra.Command, args []string) {
		amountStr, _ := cmd.Flags().GetString("amount")
		amount, err := parseEther(amountStr)
		if err != nil {
			fail("%v", err)
		}

		ctx := context.Background()
		session, dao := signingDAO(ctx)
		defer session.Close()

		receipt, err := dao.Fund(ctx, amount)
		if err != nil {
			fail("存入失败: %v", err)
		}
		balance, err := dao.UserBalance(ctx, session.Relayer)
		if err != nil {
			fail("%v", err)
		}
		fmt.Printf("✅ Funded %s ETH: tx %s\n", governance.FormatEther(amount), receipt.TxHash.Hex())
		fmt.Printf("Your balance in the DAO: %s ETH\n", governance.FormatEther(balance))
	},
}

func init() {
	rootCmd.AddCommand(fundCmd)
	fundCmd.Flags().String("amount", "", "ETH to deposit, e.g. 1.5")
	addKeyFlag(fundCmd)
}
