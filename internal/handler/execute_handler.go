package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/richardcmg7/dao-voting-platform/internal/handler/request"
	"github.com/richardcmg7/dao-voting-platform/internal/handler/response"
	"github.com/richardcmg7/dao-voting-platform/internal/service"
	"github.com/richardcmg7/dao-voting-platform/pkg/errno"
	"github.com/richardcmg7/dao-voting-platform/pkg/validator"
)

type ExecuteHandler struct {
	executor *service.ExecutorService
	sweeper  *service.SweeperService
}

func NewExecuteHandler(executor *service.ExecutorService, sweeper *service.SweeperService) *ExecuteHandler {
	return &ExecuteHandler{executor: executor, sweeper: sweeper}
}

// ExecuteProposal 检查并执行单个提案
// @Summary Check or execute one proposal
// @Description Reports every readiness condition; executes when ready unless debugOnly is set
// @Tags Proposals
// @Accept json
// @Produce json
// @Param request body request.ExecuteProposalRequest true "Proposal id and mode"
// @Success 200 {object} response.ExecuteResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/execute-proposal [post]
func (h *ExecuteHandler) ExecuteProposal(c *gin.Context) {
	var req request.ExecuteProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrInvalidPayload.WithMessage("Invalid request payload: "+validator.GetErrorMsg(err)))
		return
	}

	report, err := h.executor.Execute(c.Request.Context(), *req.ProposalID, req.DebugOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	var txHash *string
	if report.TxHash != nil {
		s := report.TxHash.Hex()
		txHash = &s
	}
	response.Success(c, response.ExecuteResponse{
		Ok:               response.OK(),
		ProposalID:       report.ProposalID,
		Executed:         report.Executed,
		TxHash:           txHash,
		CanExecuteBefore: report.CanExecuteBefore,
		ServerTimestamp:  report.ServerTimestamp,
		ExecutionDelay:   report.ExecutionDelay,
		Deadline:         report.Deadline,
		Diagnostics:      report.Diagnostics,
		Conditions:       report.Conditions(),
	})
}

// ExecuteReady 批量执行所有就绪提案
// @Summary Execute every ready proposal
// @Description Walks all proposals; one failure is reported in errors and does not stop the batch
// @Tags Proposals
// @Produce json
// @Success 200 {object} response.SweepResponse
// @Failure 500 {object} map[string]string "daemon not configured"
// @Router /api/v1/execute-proposals [get]
func (h *ExecuteHandler) ExecuteReady(c *gin.Context) {
	res, err := h.sweeper.Sweep(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, response.SweepResponse{
		Ok:        response.OK(),
		Executed:  res.Executed,
		Errors:    res.Errors,
		Timestamp: res.Timestamp.Format(time.RFC3339Nano),
	})
}
