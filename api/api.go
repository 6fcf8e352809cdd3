// Package api carries the OpenAPI contract of the fulfillment service and
// exposes it as a parsed document for validation and serving.
package api

import (
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yml
var openapiSpec []byte

// GetSwagger parses the embedded OpenAPI document and validates that it is
// internally consistent. Called once at startup so a broken contract fails
// the boot instead of the first request.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}

	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("openapi document is invalid: %w", err)
	}

	return doc, nil
}
