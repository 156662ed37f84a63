package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/labstack/echo/v4"
	md "github.com/oapi-codegen/nethttp-middleware"
)

//go:embed openapi.yaml
var openapiDocument []byte

// LoadOpenAPI parses and validates the embedded API description.
func LoadOpenAPI() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiDocument)
	if err != nil {
		return nil, err
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, err
	}
	return doc, nil
}

// RequestValidator rejects requests that do not follow the API description
// before they reach a handler.
func RequestValidator(doc *openapi3.T) echo.MiddlewareFunc {
	return echo.WrapMiddleware(md.OapiRequestValidatorWithOptions(doc, &md.Options{
		ErrorHandlerWithOpts:  validatorErrorHandler,
		SilenceServersWarning: true,
		Options: openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}))
}

func validatorErrorHandler(
	_ context.Context,
	err error,
	w http.ResponseWriter,
	_ *http.Request,
	opts md.ErrorHandlerOpts,
) {
	w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w.WriteHeader(opts.StatusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{Code: opts.StatusCode, Message: err.Error()})
}
