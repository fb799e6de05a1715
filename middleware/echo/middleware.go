package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reoring/parametric"
	"github.com/reoring/parametric/middleware"
)

// Resolve resolves the request payload with r, stores the output in the
// request context on success, or returns 400 with Issues.
func Resolve(r parametric.Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			out, iss, err := middleware.ResolveRequest(c.Request(), r)
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
			}
			if len(iss) > 0 {
				return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(iss))
			}
			ctx := middleware.ContextWithOutput(c.Request().Context(), out)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// Output fetches the resolved output from echo.Context.
func Output(c echo.Context) (map[string]any, bool) {
	return middleware.OutputFromContext(c.Request().Context())
}
