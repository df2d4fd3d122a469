package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// ServeAggregate starts a local HTTP server on the given port. It re-parses
// the input file on every /api/aggregate request, so the endpoint stays
// current as the log file is appended to. Each request is a complete run;
// nothing is streamed.
func ServeAggregate(path string, opts Options, port int, logger *zap.Logger) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/aggregate", func(w http.ResponseWriter, r *http.Request) {
		agg, err := Aggregate(path, opts, logger)
		if err != nil {
			http.Error(w, "failed to aggregate: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(agg)
	})

	addr := fmt.Sprintf(":%d", port)
	logger.Info("serving aggregate", zap.String("url", fmt.Sprintf("http://localhost%s/api/aggregate", addr)))

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return server.ListenAndServe()
}
