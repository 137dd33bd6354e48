package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reoring/schemable"
	"github.com/reoring/schemable/decoder"
	"github.com/reoring/schemable/middleware"
)

// ValidateJSON decodes the request body with d, stores the decoded value in
// the request context and aborts with 400 and the Issues payload on failure.
func ValidateJSON(d decoder.Decoder, opt middleware.Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := middleware.DecodeRequest(c.Request, d, opt)
		if err != nil {
			if iss, ok := schemable.AsIssues(err); ok {
				c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorPayload(iss))
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithDecoded(c.Request.Context(), v))
		c.Next()
	}
}

// GetDecoded fetches the decoded body from gin.Context.
func GetDecoded(c *gin.Context) (any, bool) {
	return middleware.DecodedFromContext(c.Request.Context())
}
