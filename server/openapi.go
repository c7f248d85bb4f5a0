package server

import (
	_ "embed"
	"net/http"
)

var (
	//go:embed openapi.yaml
	openAPISpec []byte

	redocPage = []byte(`<!doctype html>
<html>
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>fcbrates API</title>
  </head>
  <body>
    <redoc spec-url="/openapi.yaml"></redoc>
    <script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
  </body>
</html>`)
)

// OpenAPI serves the OpenAPI document of the HTTP API
func (s *Server) OpenAPI(w http.ResponseWriter, _ *http.Request) {
	writeStatic(w, "application/yaml; charset=utf-8", openAPISpec)
}

// Redoc serves the rendered API documentation
func (s *Server) Redoc(w http.ResponseWriter, _ *http.Request) {
	writeStatic(w, "text/html; charset=utf-8", redocPage)
}

func writeStatic(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)

	_, _ = w.Write(body) //nolint:errcheck // Fine to ignore
}
