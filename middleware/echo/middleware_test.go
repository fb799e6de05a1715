package echomw_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/parametric"
	echomw "github.com/reoring/parametric/middleware/echo"
)

func newServer(r parametric.Resolver) *echo.Echo {
	e := echo.New()
	e.Any("/", func(c echo.Context) error {
		out, ok := echomw.Output(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, out)
	}, echomw.Resolve(r))
	return e
}

func TestResolve_JSONBody(t *testing.T) {
	s := parametric.NewSchema()
	s.Field("email").Validate("email")
	s.Field("status").Options("draft", "live").Default("draft")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.io","status":"gone"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	newServer(s.MustBuild()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"email":"a@b.io","status":"draft"}`, rec.Body.String())
}

func TestResolve_IssuesRespond400(t *testing.T) {
	s := parametric.NewSchema()
	s.Field("email").Required().Validate("email")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	newServer(s.MustBuild()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"path":"/email"`)
	assert.Contains(t, rec.Body.String(), `"code":"email"`)
}
