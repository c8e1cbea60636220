package router

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/PayHook/internal/pkg/constants"
)

func loadOpenAPI(t *testing.T) *openapi3.T {
	t.Helper()
	path := findProjectFile(constants.DocsFilePath)
	require.NotEmpty(t, path, "openapi document not found")

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(path)
	require.NoError(t, err)
	require.NoError(t, doc.Validate(loader.Context))
	return doc
}

func TestOpenAPI_DocumentIsValid(t *testing.T) {
	doc := loadOpenAPI(t)
	for _, p := range []string{"/health", "/webhook", "/webhook/status", "/webhook/toggle", "/payments", "/payments/stats"} {
		require.NotNil(t, doc.Paths.Find(p), p)
	}
}

// Responses of the real routes must match the documented schemas.
func TestOpenAPI_ResponsesMatchDocument(t *testing.T) {
	doc := loadOpenAPI(t)
	oaRouter, err := gorillamux.NewRouter(doc)
	require.NoError(t, err)

	app := newTestApp(t, testConfig(t))

	steps := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodPost, "/webhook", `{"payment_id":"abc","amount":500,"payer":"Juan"}`, http.StatusOK},
		{http.MethodPost, "/webhook", `{"payment_id":"abc","amount":500,"payer":"Juan"}`, http.StatusOK},
		{http.MethodPost, "/webhook", `{"payment_id":`, http.StatusInternalServerError},
		{http.MethodGet, "/payments", "", http.StatusOK},
		{http.MethodGet, "/payments/stats", "", http.StatusOK},
		{http.MethodPost, "/webhook/toggle", "", http.StatusOK},
		{http.MethodPost, "/webhook", `{"amount":1}`, http.StatusServiceUnavailable},
		{http.MethodGet, "/webhook/status", "", http.StatusOK},
	}

	for _, step := range steps {
		req := httptest.NewRequest(step.method, "http://localhost:3001"+step.path, strings.NewReader(step.body))
		if step.body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, step.status, resp.StatusCode, "%s %s: %s", step.method, step.path, body)

		route, params, err := oaRouter.FindRoute(req)
		require.NoError(t, err, "%s %s", step.method, step.path)

		input := &openapi3filter.ResponseValidationInput{
			RequestValidationInput: &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: params,
				Route:      route,
			},
			Status: resp.StatusCode,
			Header: resp.Header,
		}
		input.SetBodyBytes(body)
		require.NoError(t, openapi3filter.ValidateResponse(context.Background(), input), "%s %s: %s", step.method, step.path, body)
	}
}
