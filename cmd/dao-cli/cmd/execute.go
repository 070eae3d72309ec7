package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/richardcmg7/dao-voting-platform/internal/governance"
)

type executeResponse struct {
	Success          bool                   `json:"success"`
	ProposalID       uint64                 `json:"proposalId"`
	Executed         bool                   `json:"executed"`
	TxHash           *string                `json:"txHash"`
	CanExecuteBefore bool                   `json:"canExecuteBefore"`
	ServerTimestamp  uint64                 `json:"serverTimestamp"`
	Diagnostics      []string               `json:"diagnostics"`
	Conditions       []governance.Condition `json:"conditions"`
}

var executeCmd = &cobra.Command{
	Use:   "execute",
	Short: "检查或执行提案 (Check or execute a proposal)",
	Run: func(cmd *cobra.Command, args []string) {
		proposalID, _ := cmd.Flags().GetUint64("proposal")
		debugOnly, _ := cmd.Flags().GetBool("debug")
		if proposalID == 0 {
			fail("--proposal is required")
		}

		var res executeResponse
		body := map[string]interface{}{"proposalId": proposalID, "debugOnly": debugOnly}
		if err := callAPI(context.Background(), http.MethodPost, "/api/v1/execute-proposal", body, &res); err != nil {
			fail("%v", err)
		}

		for _, line := range res.Diagnostics {
			fmt.Println("  " + line)
		}
		switch {
		case res.TxHash != nil:
			fmt.Printf("\n✅ Proposal %d executed: tx %s\n", res.ProposalID, *res.TxHash)
		case res.Executed:
			fmt.Printf("\nProposal %d was already executed\n", res.ProposalID)
		case debugOnly:
			fmt.Printf("\nReady: %t (diagnostics only, nothing submitted)\n", res.CanExecuteBefore)
		default:
			fmt.Printf("\nProposal %d not executed\n", res.ProposalID)
		}
	},
}

func init() {
	rootCmd.AddCommand(executeCmd)
	executeCmd.Flags().Uint64("proposal", 0, "proposal id")
	executeCmd.Flags().Bool("debug", false, "report readiness without executing")
}
