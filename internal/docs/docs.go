// Package docs serves the OpenAPI description of the HTTP API.
package docs

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openapiYAML []byte

// Document is the parsed API description in both wire formats
type Document struct {
	yaml []byte
	json []byte
}

// Load parses the embedded OpenAPI document
func Load() (*Document, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(openapiYAML, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse openapi document: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode openapi document: %w", err)
	}
	return &Document{yaml: openapiYAML, json: raw}, nil
}

// Register mounts the document on r
func (d *Document) Register(r *mux.Router) {
	r.HandleFunc("/api-docs", d.serveJSON).Methods("GET")
	r.HandleFunc("/api-docs/openapi.yaml", d.serveYAML).Methods("GET")
}

func (d *Document) serveJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(d.json)
}

func (d *Document) serveYAML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(d.yaml)
}
