package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/richardcmg7/dao-voting-platform/pkg/errno"
)

// Success writes body as-is with 200. Bodies embed Ok so clients can test `success`.
func Success(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

// Error writes {error, code} plus any Errno fields (e.g. expected/got) with the Errno's HTTP status.
func Error(c *gin.Context, err error) {
	e := errno.Decode(err)
	body := gin.H{
		"error": e.Message,
		"code":  e.Code,
	}
	for k, v := range e.Fields {
		body[k] = v
	}
	c.AbortWithStatusJSON(e.Status, body)
}

// Ok is embedded by every success body.
type Ok struct {
	Success bool `json:"success" example:"true"`
}

func OK() Ok { return Ok{Success: true} }
