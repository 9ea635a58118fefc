package response

import (
	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope of every form endpoint
type Response struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Success sends {"ok":true}
func Success(c *gin.Context, code int) {
	c.JSON(code, Response{OK: true})
}

// Error sends {"ok":false,"error":message}
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		OK:    false,
		Error: message,
	})
}
