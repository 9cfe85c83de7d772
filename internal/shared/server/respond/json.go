package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Success writes the analysis success envelope. persisted tells the client
// whether this run stored a new result or replayed an existing one.
func Success(c *gin.Context, result interface{}, persisted bool) {
	JSON(c, http.StatusOK, gin.H{
		"success":   true,
		"result":    result,
		"persisted": persisted,
	})
}
