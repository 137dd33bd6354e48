package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reoring/schemable"
	"github.com/reoring/schemable/decoder"
	"github.com/reoring/schemable/middleware"
)

// ValidateJSON decodes the request body with d, stores the decoded value in
// the request context on success, or returns 400 with Issues.
func ValidateJSON(d decoder.Decoder, opt middleware.Options) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, err := middleware.DecodeRequest(c.Request(), d, opt)
			if err != nil {
				if iss, ok := schemable.AsIssues(err); ok {
					return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(iss))
				}
				return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
			}
			ctx := middleware.ContextWithDecoded(c.Request().Context(), v)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetDecoded fetches the decoded body from echo.Context.
func GetDecoded(c echo.Context) (any, bool) {
	return middleware.DecodedFromContext(c.Request().Context())
}
