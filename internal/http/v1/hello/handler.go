package hello

import (
	"context"
	"net/http"
	"reflect"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/hello-api/internal/platform/logging"
)

// Tag groups the operations in the API reference.
const Tag = "Hello API"

// Register wires the welcome, hello and status routes into api.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "index",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Welcome endpoint",
		Description: "Returns a welcome message to the API",
		Tags:        []string{Tag},
		Responses:   textResponse("Welcome message returned successfully", WelcomeMessage),
	}, indexHandler)

	huma.Register(api, huma.Operation{
		OperationID: "hello",
		Method:      http.MethodGet,
		Path:        "/hello",
		Summary:     "Hello endpoint",
		Description: "Returns a simple hello message",
		Tags:        []string{Tag},
		Responses:   textResponse("Hello message returned successfully", HelloMessage),
	}, helloHandler)

	huma.Register(api, huma.Operation{
		OperationID: "status",
		Method:      http.MethodGet,
		Path:        "/api/status",
		Summary:     "Status endpoint",
		Description: "Returns the status of the API in JSON format",
		Tags:        []string{Tag},
		Responses:   statusResponse(api.OpenAPI().Components.Schemas),
	}, statusHandler)
}

func indexHandler(ctx context.Context, _ *struct{}) (*RawOutput, error) {
	applog.LogDebug(ctx, "welcome", zap.String("path", "/"))
	return &RawOutput{ContentType: contentTypeText, Body: []byte(WelcomeMessage)}, nil
}

func helloHandler(ctx context.Context, _ *struct{}) (*RawOutput, error) {
	applog.LogDebug(ctx, "hello", zap.String("path", "/hello"))
	return &RawOutput{ContentType: contentTypeText, Body: []byte(HelloMessage)}, nil
}

func statusHandler(ctx context.Context, _ *struct{}) (*RawOutput, error) {
	applog.LogDebug(ctx, "status", zap.String("path", "/api/status"))
	return &RawOutput{ContentType: contentTypeJSON, Body: []byte(StatusPayload)}, nil
}

func textResponse(description, example string) map[string]*huma.Response {
	return map[string]*huma.Response{
		"200": {
			Description: description,
			Content: map[string]*huma.MediaType{
				"text/plain": {
					Schema: &huma.Schema{Type: huma.TypeString, Examples: []any{example}},
				},
			},
		},
	}
}

func statusResponse(registry huma.Registry) map[string]*huma.Response {
	return map[string]*huma.Response{
		"200": {
			Description: "Status information returned successfully",
			Content: map[string]*huma.MediaType{
				contentTypeJSON: {
					Schema: registry.Schema(reflect.TypeFor[Status](), true, "Status"),
				},
			},
		},
	}
}
