// Package swaggerkit serves the OpenAPI document and Swagger UI
package swaggerkit

import (
	"net/http"

	phttp "entitylens/internal/platform/net/http"
	docs "entitylens/internal/services/api/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	docsRoot = "/api/docs"
	docsJSON = docsRoot + "/doc.json"
)

// Mount registers the UI and the JSON document under /api/docs; no-op when disabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get(docsRoot, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, docsRoot+"/", http.StatusPermanentRedirect)
	})
	r.Get(docsJSON, serveDocJSON())
	r.Handle(docsRoot+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
		httpSwagger.URL(docsJSON),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DeepLinking(true),
	))
}
