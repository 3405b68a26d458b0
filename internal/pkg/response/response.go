package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the wire format every endpoint speaks: data on success, error
// otherwise, never both.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Envelope{Success: true, Data: data})
}

// Paginated wraps a list payload and its total count for listing endpoints.
func Paginated(c *gin.Context, key string, items interface{}, total int64) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    gin.H{key: items, "total": total},
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: message},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details interface{}) {
	c.JSON(statusCode, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: message, Details: details},
	})
}
