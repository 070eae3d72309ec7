package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/richardcmg7/dao-voting-platform/internal/handler/request"
	"github.com/richardcmg7/dao-voting-platform/internal/handler/response"
	"github.com/richardcmg7/dao-voting-platform/internal/service"
	"github.com/richardcmg7/dao-voting-platform/pkg/errno"
	"github.com/richardcmg7/dao-voting-platform/pkg/validator"
)

type RelayHandler struct {
	svc *service.RelayService
}

func NewRelayHandler(svc *service.RelayService) *RelayHandler {
	return &RelayHandler{svc: svc}
}

// Relay 转发已签名的元交易
// @Summary Relay a signed meta-transaction
// @Description Checks the sender's forwarder nonce, then submits the request paying its gas
// @Tags Relay
// @Accept json
// @Produce json
// @Param request body request.RelayRequest true "Signed forward request"
// @Success 200 {object} response.RelayResponse
// @Failure 400 {object} map[string]string "malformed payload or nonce mismatch (expected/got)"
// @Failure 500 {object} map[string]string "relayer not configured or submission failed"
// @Router /api/v1/relay [post]
func (h *RelayHandler) Relay(c *gin.Context) {
	var req request.RelayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrInvalidPayload.WithMessage("Invalid request payload: "+validator.GetErrorMsg(err)))
		return
	}
	fwd, sig, err := req.ToForwardRequest()
	if err != nil {
		response.Error(c, errno.ErrInvalidPayload.WithMessage("Invalid request payload: "+err.Error()))
		return
	}

	res, err := h.svc.Submit(c.Request.Context(), fwd, sig)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, response.RelayResponse{
		Ok:          response.OK(),
		TxHash:      res.TxHash.Hex(),
		BlockNumber: res.BlockNumber,
	})
}
