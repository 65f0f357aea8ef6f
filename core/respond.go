package core

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// errorBody is the uniform error payload sent to callers. Code is present
// only when the originating error carried a machine-readable discriminator.
type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// respondError normalizes any error into {message, code} with a derived
// status, and logs the request outcome. Unclassified errors become 500 with
// a generic message; internal detail is never exposed.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"
	code := ""

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		status = domainErr.Status()
		message = domainErr.Message
		code = domainErr.Code
	}

	log.Printf("[%s] %s >> Status: %d, Message: %s", c.Request.Method, c.Request.URL.Path, status, message)
	c.JSON(status, errorBody{Message: message, Code: code})
}

// Recovery converts panics into a best-effort 500 response so a formatting
// or handler fault never drops the connection without a body.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[ERROR] panic recovered: %v", r)
				if !c.Writer.Written() {
					c.JSON(http.StatusInternalServerError, errorBody{Message: "Internal server error"})
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
