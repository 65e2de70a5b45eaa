package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	perr "skillreel/internal/platform/errors"
	pnet "skillreel/internal/platform/net"
)

// docReader returns the raw generated document; set per build tag
var docReader func() string

const errorRef = "#/components/schemas/ErrorResponse"

// prepare lifts the generated document to OAS 3.0.3 and adds the error envelope
// plus default 400 and 500 responses to every operation
func prepare(raw, server, titleSuffix string) (map[string]any, error) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		return nil, err
	}

	// swagger-ui cannot render 3.1 yet
	delete(spec, "swagger")
	if v, _ := spec["openapi"].(string); v == "" || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": server}}
	}
	if info, ok := spec["info"].(map[string]any); ok && titleSuffix != "" {
		title, _ := info["title"].(string)
		info["title"] = strings.TrimSpace(title + " " + titleSuffix)
	}

	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = errorSchema()
	}

	defaults := map[string]any{
		"400": errorResponse("Bad Request", perr.New(perr.ErrorCodeValidation, "video_url must be an http(s) url")),
		"500": errorResponse("Internal Server Error", perr.PanicErrf("internal error")),
	}
	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		ops, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, o := range ops {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			resps := child(op, "responses")
			for code, r := range defaults {
				if _, ok := resps[code]; !ok {
					resps[code] = r
				}
			}
		}
	}
	return spec, nil
}

func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

func errorSchema() map[string]any {
	str := map[string]any{"type": "string"}
	return map[string]any{
		"type":        "object",
		"description": "Error envelope",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      str,
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       str,
			"request_id":  str,
		},
		"required": []any{"status_code", "status"},
	}
}

// errorResponse renders the example through the envelope writer so docs match the wire
func errorResponse(desc string, err error) map[string]any {
	_, env := pnet.Fail(err, "579f33bf50b1/abc-000001")
	return map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": errorRef},
				"example": env,
			},
		},
	}
}

func serveDocJSON(titleSuffix string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		spec, err := prepare(docReader(), "/api/v1", titleSuffix)
		if err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}
