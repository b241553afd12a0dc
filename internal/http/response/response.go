package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope wraps every JSON body the API writes.
type Envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func RespondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Status: true, Message: message, Data: data})
}

func RespondCreated(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{Status: true, Message: message, Data: data})
}

func RespondStatus(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Status: false, Message: message})
}

// AbortWithStatus writes a failure envelope and stops the handler chain.
func AbortWithStatus(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Status: false, Message: message})
}
