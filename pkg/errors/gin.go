package errors

import (
	"github.com/gin-gonic/gin"
)

// Respond writes the error to the gin context with its mapped status.
// Unknown error types are treated as Internal.
func Respond(c *gin.Context, err error) {
	var e *Error
	if !As(err, &e) {
		e = Internal.Explain("internal server error").Wrap(err)
	}
	c.JSON(e.Status(), gin.H{"error": e.Public()})
}
