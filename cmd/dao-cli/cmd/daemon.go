package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/richardcmg7/dao-voting-platform/internal/service"
	"github.com/richardcmg7/dao-voting-platform/pkg/logger"
)

type sweepResponse struct {
	Success   bool                 `json:"success"`
	Executed  []uint64             `json:"executed"`
	Errors    []service.SweepError `json:"errors"`
	Timestamp string               `json:"timestamp"`
}

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "定时触发批量执行 (Execution daemon)",
	Long: `Calls the batch-execution endpoint immediately and then every --interval seconds,
reporting executed proposals and per-proposal errors until SIGINT or SIGTERM.`,
	Run: func(cmd *cobra.Command, args []string) {
		interval, _ := cmd.Flags().GetInt("interval")
		if interval <= 0 {
			fail("--interval must be positive")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("DAO execution daemon started",
			zap.Int("interval_seconds", interval),
			zap.String("api_url", apiURL))

		var total int
		ticker := time.NewTicker(time.Duration(interval) * time.Second)
		defer ticker.Stop()

		for {
			total += runSweep(ctx)
			logger.Info("running total", zap.Int("executed_total", total))

			select {
			case <-ctx.Done():
				logger.Info("daemon shutting down", zap.Int("executed_total", total))
				return
			case <-ticker.C:
			}
		}
	},
}

// runSweep returns how many proposals the server executed in this round.
func runSweep(ctx context.Context) int {
	logger.Info("checking for executable proposals")

	var res sweepResponse
	if err := callAPI(ctx, http.MethodGet, "/api/execute-proposals", nil, &res); err != nil {
		if ctx.Err() == nil {
			logger.Error("sweep request failed", zap.Error(err))
		}
		return 0
	}

	if len(res.Executed) > 0 {
		logger.Info(fmt.Sprintf("executed %d proposal(s)", len(res.Executed)), zap.Uint64s("ids", res.Executed))
	} else {
		logger.Info("no proposals ready for execution")
	}
	if len(res.Errors) > 0 {
		lines := make([]string, 0, len(res.Errors))
		for _, e := range res.Errors {
			lines = append(lines, fmt.Sprintf("proposal %d: %s", e.ID, e.Error))
		}
		logger.Warn("errors encountered", zap.String("errors", strings.Join(lines, "; ")))
	}
	return len(res.Executed)
}

func init() {
	rootCmd.AddCommand(daemonCmd)
	daemonCmd.Flags().Int("interval", 60, "seconds between sweeps")
}
