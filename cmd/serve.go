package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/propai/catalyst-cli/internal/impact"
	"github.com/propai/catalyst-cli/internal/model"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the parcel scoring server",
	Long: `Loads the stored catalysts into an in-memory snapshot and serves scoring
requests over HTTP. The snapshot is immutable for the life of the
process; restart after an ingest run to pick up new catalysts.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	catalysts, err := s.ListCatalysts(ctx)
	if err != nil {
		return err
	}
	snap := impact.NewSnapshotWithCeiling(catalysts, cfg.Impact.ScoreCeiling)
	zap.L().Info("snapshot loaded", zap.Int("catalysts", snap.Len()))

	port := servePort
	if port == 0 {
		port = cfg.Server.Port
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: newRouter(snap, catalysts),
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		srv.Shutdown(ctx)
	}()

	zap.L().Info("starting server", zap.Int("port", port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server listen")
	}

	return nil
}

func newRouter(snap *impact.Snapshot, catalysts []model.Catalyst) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":    "ok",
			"catalysts": snap.Len(),
		})
	})

	r.Get("/catalysts", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, catalysts)
	})

	r.Post("/score", func(w http.ResponseWriter, req *http.Request) {
		var in impact.ParcelInput
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if in.Lat < -90 || in.Lat > 90 || in.Lng < -180 || in.Lng > 180 {
			writeJSONError(w, http.StatusBadRequest, "coordinates out of range")
			return
		}

		writeJSON(w, http.StatusOK, impact.ScoreParcel(in, snap))
	})

	r.Post("/score/location", func(w http.ResponseWriter, req *http.Request) {
		var in struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		}
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if in.Lat < -90 || in.Lat > 90 || in.Lng < -180 || in.Lng > 180 {
			writeJSONError(w, http.StatusBadRequest, "coordinates out of range")
			return
		}

		writeJSON(w, http.StatusOK, map[string]float64{
			"lat":   in.Lat,
			"lng":   in.Lng,
			"score": snap.Score(in.Lat, in.Lng),
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
