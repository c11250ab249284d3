package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleSuccess writes a 200 envelope. A json.RawMessage data (a cached payload) is
// embedded as is.
func HandleSuccess(c *gin.Context, data interface{}, message string) {
	requestID := getRequestID(c)
	c.JSON(http.StatusOK, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusOK,
		RequestID: requestID,
	})
}

func HandleCreated(c *gin.Context, data interface{}, message string) {
	requestID := getRequestID(c)
	c.JSON(http.StatusCreated, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusCreated,
		RequestID: requestID,
	})
}

func HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
