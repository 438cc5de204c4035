// Package api holds the HTTP contract: the embedded OpenAPI document and the
// request and response bodies it describes.
package api

import (
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

// DocName is the swag registry key for the API document.
const DocName = "marketplace"

//go:embed openapi.yaml
var specYAML []byte

// GetSwagger parses and validates the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(specYAML)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

type swaggerDoc struct {
	json string
}

func (d *swaggerDoc) ReadDoc() string {
	return d.json
}

var registerOnce sync.Once

// RegisterDocs publishes doc in the swag registry as JSON. Later calls are
// no-ops; swag panics on duplicate names.
func RegisterDocs(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal openapi document: %w", err)
	}
	registerOnce.Do(func() {
		swag.Register(DocName, &swaggerDoc{json: string(raw)})
	})
	return nil
}

// DocsHandler serves the registered document.
func DocsHandler(w http.ResponseWriter, _ *http.Request) {
	doc, err := swag.ReadDoc(DocName)
	if err != nil {
		http.Error(w, `{"error":"API document not registered","code":"INTERNAL_ERROR"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(doc))
}
