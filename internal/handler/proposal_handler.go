package handler

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/richardcmg7/dao-voting-platform/internal/handler/request"
	"github.com/richardcmg7/dao-voting-platform/internal/handler/response"
	"github.com/richardcmg7/dao-voting-platform/internal/service"
	"github.com/richardcmg7/dao-voting-platform/pkg/errno"
	"github.com/richardcmg7/dao-voting-platform/pkg/validator"
)

type ProposalHandler struct {
	svc *service.QueryService
}

func NewProposalHandler(svc *service.QueryService) *ProposalHandler {
	return &ProposalHandler{svc: svc}
}

// ListProposals 提案列表
// @Summary List proposals, newest first
// @Tags Proposals
// @Produce json
// @Param account query string false "Viewer address; adds their vote to each proposal"
// @Success 200 {object} response.ProposalsResponse
// @Router /api/v1/proposals [get]
func (h *ProposalHandler) ListProposals(c *gin.Context) {
	account, ok := bindAccount(c)
	if !ok {
		return
	}
	views, err := h.svc.ListProposals(c.Request.Context(), account)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, response.ProposalsResponse{Ok: response.OK(), Proposals: views})
}

// Treasury 金库信息
// @Summary Treasury balance and a member's standing
// @Tags Treasury
// @Produce json
// @Param account query string false "Member address"
// @Success 200 {object} response.TreasuryResponse
// @Router /api/v1/treasury [get]
func (h *ProposalHandler) Treasury(c *gin.Context) {
	account, ok := bindAccount(c)
	if !ok {
		return
	}
	view, err := h.svc.Treasury(c.Request.Context(), account)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, response.TreasuryResponse{Ok: response.OK(), TreasuryView: view})
}

func bindAccount(c *gin.Context) (*common.Address, bool) {
	var q request.AccountQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, errno.ErrInvalidPayload.WithMessage("Invalid request payload: "+validator.GetErrorMsg(err)))
		return nil, false
	}
	if q.Account == "" {
		return nil, true
	}
	addr := common.HexToAddress(q.Account)
	return &addr, true
}
