package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondAppErr -> memetakan *AppError ke HTTP status yang sesuai.
// Error lain dianggap internal (500).
func RespondAppErr(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(HTTPStatusForCode(appErr.Code), JSONResponse{
			Status:  false,
			Message: appErr.Message,
			Data:    gin.H{"code": appErr.Code, "details": appErr.Details},
		})
		return
	}
	RespondError(c, 500, err)
}
