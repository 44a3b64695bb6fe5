package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/klauspost/compress/gzhttp"
	"github.com/platterhq/platter/domain"
)

// Store is the persistence the server needs: the food collection and its statistics.
type Store interface {
	domain.FoodStore
	domain.StatsRepository
}

// Server serves the /foods collection from a Store.
type Server struct {
	store  Store
	logger *slog.Logger
}

// New creates a Server backed by store. A nil logger falls back to slog.Default().
func New(store Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:  store,
		logger: logger,
	}
}

// Handler returns the routed handler, wrapped with request logging and gzip compression.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")
	r.HandleFunc("/stats", s.statsHandler).Methods("GET")
	r.HandleFunc("/foods", s.listFoodsHandler).Methods("GET")
	r.HandleFunc("/foods", s.createFoodHandler).Methods("POST")
	r.HandleFunc("/foods/{id:[0-9]+}", s.getFoodHandler).Methods("GET")
	r.HandleFunc("/foods/{id:[0-9]+}", s.replaceFoodHandler).Methods("PUT")
	r.HandleFunc("/foods/{id:[0-9]+}", s.patchFoodHandler).Methods("PATCH")
	r.HandleFunc("/foods/{id:[0-9]+}", s.deleteFoodHandler).Methods("DELETE")
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, struct{}{})
	})
	r.Use(s.logRequests)

	return gzhttp.GzipHandler(r)
}

func (s *Server) listFoodsHandler(w http.ResponseWriter, r *http.Request) {
	foods, err := s.store.GetFoods()
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, foods)
}

func (s *Server) getFoodHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := foodID(w, r)
	if !ok {
		return
	}
	food, err := s.store.GetFood(id)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, food)
}

func (s *Server) createFoodHandler(w http.ResponseWriter, r *http.Request) {
	var food domain.Food
	if err := json.NewDecoder(r.Body).Decode(&food); err != nil {
		writeError(w, http.StatusBadRequest, "malformed food: "+err.Error())
		return
	}
	if err := s.store.InsertFood(&food); err != nil {
		if errors.Is(err, domain.ErrDuplicateFoodID) {
			writeError(w, http.StatusInternalServerError, "Insert failed, duplicate id")
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, food)
}

func (s *Server) replaceFoodHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := foodID(w, r)
	if !ok {
		return
	}
	var food domain.Food
	if err := json.NewDecoder(r.Body).Decode(&food); err != nil {
		writeError(w, http.StatusBadRequest, "malformed food: "+err.Error())
		return
	}
	food.ID = id
	if err := s.store.ReplaceFood(&food); err != nil {
		s.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, food)
}

func (s *Server) patchFoodHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := foodID(w, r)
	if !ok {
		return
	}
	var patch domain.FoodPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "malformed patch: "+err.Error())
		return
	}
	food, err := s.store.PatchFood(id, patch)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, food)
}

func (s *Server) deleteFoodHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := foodID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteFood(id); err != nil {
		s.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

// StatsResponse is the wire format for GET /stats.
type StatsResponse struct {
	Foods     int `json:"foods"`
	Available int `json:"available"`
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	foods, err := s.store.CountFoods()
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	available, err := s.store.CountAvailable()
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StatsResponse{Foods: foods, Available: available})
}

func foodID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid food id")
		return 0, false
	}
	return id, true
}

// storeError maps a store error to a response: ErrFoodNotFound becomes an empty 404.
func (s *Server) storeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrFoodNotFound) {
		writeJSON(w, http.StatusNotFound, struct{}{})
		return
	}
	s.internalError(w, r, err)
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("store failure", "method", r.Method, "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"request_id", r.Header.Get("X-Request-ID"),
		)
	})
}
