package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ddvk/rmscribble/dispatch"
	"github.com/ddvk/rmscribble/host"
	"github.com/ddvk/rmscribble/log"
	"github.com/ddvk/rmscribble/settings"
	"github.com/golang-jwt/jwt"
)

type ApiServer struct {
	host       host.Host
	dispatcher *dispatch.Dispatcher
	store      settings.Store
	secret     []byte
	// save persists the document after a pen-up, nil for remote hosts
	save func() error
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type penUpResponse struct {
	Duplicate bool              `json:"duplicate"`
	Deleted   int               `json:"deleted"`
	Settings  settings.Settings `json:"settings"`
}

func NewApiServer(h host.Host, store settings.Store, secret string, save func() error) *ApiServer {
	s := &ApiServer{
		host:       h,
		dispatcher: dispatch.New(h, store),
		store:      store,
		save:       save,
	}
	if secret != "" {
		s.secret = []byte(secret)
	}
	return s
}

func (s *ApiServer) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
}

func (s *ApiServer) writeSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{Data: data})
}

// authorize checks the bearer token when a secret is configured.
func (s *ApiServer) authorize(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.secret == nil {
			next(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			s.writeError(w, http.StatusUnauthorized, fmt.Errorf("missing bearer token"))
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return s.secret, nil
		})
		if err != nil || !token.Valid {
			log.Trace.Println("rejected token: ", err)
			s.writeError(w, http.StatusUnauthorized, fmt.Errorf("invalid token"))
			return
		}

		next(w, r)
	}
}

// POST /api/penup
func (s *ApiServer) handlePenUp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var elements []host.Element
	if err := json.NewDecoder(r.Body).Decode(&elements); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := s.dispatcher.HandlePenUp(r.Context(), elements)
	if s.save != nil && report.Changed() {
		if saveErr := s.save(); saveErr != nil {
			s.writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to save document: %v", saveErr))
			return
		}
	}
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}

	s.writeSuccess(w, penUpResponse{
		Duplicate: report.Duplicate,
		Deleted:   report.Deleted(),
		Settings:  report.Settings,
	})
}

// GET /api/elements?page=<n>
func (s *ApiServer) handleElements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 0 {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("page parameter is required"))
		return
	}

	path, err := s.host.CurrentFilePath(r.Context())
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	elements, err := s.host.Elements(r.Context(), page, path)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	if elements == nil {
		elements = []host.Element{}
	}
	s.writeSuccess(w, elements)
}

// GET /api/settings
func (s *ApiServer) handleSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resolved, err := settings.Resolve(r.Context(), s.store)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeSuccess(w, resolved)
}

// GET /api/health
func (s *ApiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	last, seen, err := s.dispatcher.LastProcessed(r.Context())
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	data := map[string]interface{}{"version": Version}
	if seen {
		data["lastProcessed"] = last
	}
	s.writeSuccess(w, data)
}

func (s *ApiServer) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/penup", s.authorize(s.handlePenUp))
	mux.HandleFunc("/api/elements", s.authorize(s.handleElements))
	mux.HandleFunc("/api/settings", s.authorize(s.handleSettings))
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

func runServerMode(addr string, server *ApiServer) error {
	if server.secret == nil {
		log.Warning.Println("RMSCRIBBLE_SECRET not set, requests are not authenticated")
	}
	log.Info.Printf("Starting HTTP server on %s", addr)
	return http.ListenAndServe(addr, server.routes())
}
