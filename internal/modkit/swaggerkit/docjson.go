// Package swaggerkit mounts Swagger UI and serves the OpenAPI document
package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"assetsearch/internal/platform/config"
	perr "assetsearch/internal/platform/errors"
	pnet "assetsearch/internal/platform/net"
	"assetsearch/internal/services/api/docs"
)

// docReader is swapped in tests
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

const exampleRequestID = "579f33bf50b1/abc-000001"

// sharedErrors can come back from any operation: the binder rejects a bad query
// string and the recoverer turns a panic into a 500
var sharedErrors = []error{
	perr.WithField(perr.Validationf("q must be at most 200"), "q"),
	perr.Newf(perr.ErrorCodePanic, "panic recovered"),
}

// serveDocJSON serves the document relabelled for the bundled UI, with the shared error responses filled in
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc map[string]any
		if err := json.Unmarshal([]byte(docReader()), &doc); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		asOAS30(doc, "/api/v1")
		if v := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
			if info, ok := doc["info"].(map[string]any); ok {
				if title, ok := info["title"].(string); ok {
					info["title"] = title + " " + v
				}
			}
		}
		ensureErrorSchema(doc)
		for _, err := range sharedErrors {
			addErrorResponse(doc, err)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(doc)
	}
}

// asOAS30 relabels a 3.1 or unversioned document as 3.0.3, the newest the bundled UI reads,
// and points servers at base when the document names none
func asOAS30(doc map[string]any, base string) {
	if v, _ := doc["openapi"].(string); v == "" || strings.HasPrefix(v, "3.1") {
		doc["openapi"] = "3.0.3"
	}
	if _, ok := doc["servers"]; !ok {
		doc["servers"] = []any{map[string]any{"url": base}}
	}
}

// ensureErrorSchema declares the pnet.Wire error envelope as ErrorResponse
func ensureErrorSchema(doc map[string]any) {
	comps, ok := doc["components"].(map[string]any)
	if !ok {
		comps = map[string]any{}
		doc["components"] = comps
	}
	schemas, ok := comps["schemas"].(map[string]any)
	if !ok {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	str := map[string]any{"type": "string"}
	i32 := map[string]any{"type": "integer", "format": "int32"}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Error envelope",
		"properties": map[string]any{
			"status_code": i32,
			"status":      str,
			"code":        i32,
			"error":       str,
			"field":       str,
			"request_id":  str,
		},
		"required": []any{"status_code", "status"},
	}
}

// addErrorResponse gives every operation without a response for err's status one,
// with the envelope the server would write for err as the example
func addErrorResponse(doc map[string]any, err error) {
	status, env := pnet.Error(err, exampleRequestID)
	key := strconv.Itoa(status)
	resp := map[string]any{
		"description": env.Status,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": env,
			},
		},
	}

	paths, _ := doc["paths"].(map[string]any)
	for _, node := range paths {
		ops, _ := node.(map[string]any)
		for _, v := range ops {
			op, ok := v.(map[string]any)
			if !ok {
				continue
			}
			resps, ok := op["responses"].(map[string]any)
			if !ok {
				resps = map[string]any{}
				op["responses"] = resps
			}
			if _, exists := resps[key]; !exists {
				resps[key] = resp
			}
		}
	}
}
