package common

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestGenerateOperationID(t *testing.T) {
	a := GenerateOperationID()
	b := GenerateOperationID()
	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}

func TestOperationIDMiddleware(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	var got string
	handler := OperationIDMiddleware(func(c echo.Context) error {
		got = OperationID(c.Request().Context())
		return nil
	})
	require.NoError(t, handler(c))

	require.NotEmpty(t, got)
	require.Equal(t, got, c.Get(OperationIDKey))
}

func TestExternalIDMiddleware(t *testing.T) {
	e := echo.New()

	var got string
	handler := ExternalIDMiddleware(func(c echo.Context) error {
		got = ExternalID(c.Request().Context())
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-External-Id", "req-42\n")
	c := e.NewContext(req, httptest.NewRecorder())
	require.NoError(t, handler(c))
	require.Equal(t, "req-42", got)

	// without the header the context stays empty
	got = ""
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	require.NoError(t, handler(c))
	require.Empty(t, got)
	require.Nil(t, c.Get(ExternalIDKey))
}

func TestOperationIDNilContext(t *testing.T) {
	require.Empty(t, OperationID(nil))
	require.Empty(t, ExternalID(nil))
}
