// Package middleware holds the framework-neutral pieces shared by the HTTP
// adapters in middleware/gin and middleware/echo.
package middleware

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/reoring/parametric"
	"github.com/reoring/parametric/source"
)

// ctxKeyOutput is a typed context key for the resolved output map.
type ctxKeyOutput struct{}

// ContextWithOutput attaches a resolved output map to the context.
func ContextWithOutput(ctx context.Context, out map[string]any) context.Context {
	return context.WithValue(ctx, ctxKeyOutput{}, out)
}

// OutputFromContext retrieves the resolved output map from context.
func OutputFromContext(ctx context.Context) (map[string]any, bool) {
	v, ok := ctx.Value(ctxKeyOutput{}).(map[string]any)
	return v, ok
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues parametric.Issues) map[string]any {
	return map[string]any{"issues": issues}
}

// ResolveRequest reads the request payload and resolves it with r. JSON
// bodies are decoded; requests without a body (or with a form/query only) are
// resolved from their query and form values, one []any per repeated key, a
// plain string otherwise. A decode failure is returned as err with nil
// issues.
func ResolveRequest(req *http.Request, r parametric.Resolver) (map[string]any, parametric.Issues, error) {
	payload, err := requestPayload(req)
	if err != nil {
		return nil, nil, err
	}
	out, iss := r.Resolve(payload)
	return out, iss, nil
}

func requestPayload(req *http.Request) (any, error) {
	if req.Body != nil && req.ContentLength != 0 && isJSON(req.Header.Get("Content-Type")) {
		return source.DecodeJSONReader(io.LimitReader(req.Body, maxBody))
	}
	if err := req.ParseForm(); err != nil {
		return nil, err
	}
	payload := make(map[string]any, len(req.Form))
	for k, vs := range req.Form {
		if len(vs) == 1 {
			payload[k] = vs[0]
			continue
		}
		list := make([]any, len(vs))
		for i, v := range vs {
			list[i] = v
		}
		payload[k] = list
	}
	return payload, nil
}

const maxBody = 1 << 20

func isJSON(contentType string) bool {
	return contentType == "" || strings.HasPrefix(contentType, "application/json")
}
