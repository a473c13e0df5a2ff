package rest

import (
	"net/http"
	"net/http/pprof"

	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// corsMiddleware mirrors cmd/engine/main.go's cors.Handler options exactly:
// permissive origins/methods, no credentials.
func corsMiddleware() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

func pprofMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/pprof/", pprof.Index)
	mux.HandleFunc("/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/pprof/profile", pprof.Profile)
	mux.HandleFunc("/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/pprof/trace", pprof.Trace)
	return mux
}

func metricsHandler() http.Handler {
	return promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{})
}

// swaggerDocJSON is the hand-served OpenAPI document. swaggo/swag's own
// registration machinery is not wired -- see DESIGN.md -- so this repo serves
// a static document instead of a generated one.
const swaggerDocJSON = `{
  "swagger": "2.0",
  "info": {"title": "gerona path planner API", "version": "1.0"},
  "basePath": "/api/v1",
  "paths": {
    "/path": {
      "post": {
        "summary": "Find a course-constrained path between two poses",
        "consumes": ["application/json"],
        "produces": ["application/json"],
        "responses": {
          "200": {"description": "path found"},
          "400": {"description": "invalid request"},
          "404": {"description": "no closest segment or appendix unreachable"},
          "500": {"description": "map unavailable or internal error"}
        }
      }
    }
  }
}`

func swaggerDocHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(swaggerDocJSON))
	}
}

func swaggerHandler() http.HandlerFunc {
	return httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))
}
