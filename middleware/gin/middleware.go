package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reoring/parametric"
	"github.com/reoring/parametric/middleware"
)

// Resolve resolves the request payload (JSON body, or query and form values)
// with r, stores the output in the request context, and on issues responds
// 400 with the Issues payload.
func Resolve(r parametric.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, iss, err := middleware.ResolveRequest(c.Request, r)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if len(iss) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorPayload(iss))
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithOutput(c.Request.Context(), out))
		c.Next()
	}
}

// Output fetches the resolved output from gin.Context.
func Output(c *gin.Context) (map[string]any, bool) {
	return middleware.OutputFromContext(c.Request.Context())
}
