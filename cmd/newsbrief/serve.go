package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"newsbrief/internal/logger"
	"newsbrief/internal/metrics"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve briefings and monitoring endpoints over HTTP",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := buildApp()
			if err != nil {
				return err
			}
			defer app.Close()

			mux := http.NewServeMux()
			mux.HandleFunc("/health", healthHandler)
			mux.HandleFunc("/metrics", metricsHandler)
			mux.HandleFunc("/briefing", briefingHandler(app))

			addr := ":" + app.cfg.HTTPPort
			logger.Info("starting HTTP server", "addr", addr)
			return http.ListenAndServe(addr, mux)
		},
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	writeJSON(w, map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	})
}

func metricsHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, metrics.Global.GetStats())
}

func briefingHandler(app *app) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := app.cfg.DefaultTopN
		if v := r.URL.Query().Get("n"); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				n = parsed
			}
		}

		var cats []string
		if v := r.URL.Query().Get("categories"); v != "" {
			for _, c := range strings.Split(v, ",") {
				if c = strings.TrimSpace(c); c != "" {
					cats = append(cats, c)
				}
			}
		}

		userID := r.URL.Query().Get("user")
		if userID == "" {
			userID = "default"
		}

		briefing, err := app.generator.Generate(r.Context(), userID, n, cats)
		if err != nil {
			logger.Error("briefing generation failed", "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			writeJSON(w, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, briefing)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
