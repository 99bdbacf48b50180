package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	authdomain "ducksapi/backend/internal/domain/auth"
	duckdomain "ducksapi/backend/internal/domain/duck"
	authusecase "ducksapi/backend/internal/usecase/auth"
	duckusecase "ducksapi/backend/internal/usecase/duck"
	"ducksapi/backend/internal/validation"
)

const welcomeMessage = "Welcome to the API_Ducks_WORLD"

func (s *Server) registerRoutes() {
	s.router.Handle("/health", http.HandlerFunc(s.handleHealth))
	s.router.Handle("/api/", http.HandlerFunc(s.handleWelcome))
	s.router.Handle("/api/docs", http.HandlerFunc(s.handleDocs))
	s.router.Handle("/api/docs/openapi.yaml", http.HandlerFunc(s.handleDocsYAML))

	s.router.Handle("/api/user/register", http.HandlerFunc(s.handleRegister))
	s.router.Handle("/api/user/login", http.HandlerFunc(s.handleLogin))

	s.router.Handle("/api/ducks", s.gateWrites(http.HandlerFunc(s.handleDucks)))
	s.router.Handle("/api/ducks/random", http.HandlerFunc(s.handleRandomDuck))
	s.router.Handle("/api/ducks/", s.gateWrites(http.HandlerFunc(s.handleDuckByID)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.pingStore(ctx); err != nil {
		s.log.ErrorContext(ctx, "health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) pingStore(ctx context.Context) error {
	sess, err := s.store.Connect(ctx)
	if err != nil {
		return err
	}
	defer sess.Release()
	return sess.Ping(ctx)
}

func (s *Server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/" {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	writeText(w, http.StatusOK, welcomeMessage)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload authusecase.RegisterInput
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	id, err := s.authService.Register(r.Context(), payload)
	if err != nil {
		var verr *validation.Error
		switch {
		case errors.As(err, &verr):
			writeError(w, http.StatusBadRequest, verr.Message)
		case errors.Is(err, authdomain.ErrEmailExists):
			writeError(w, http.StatusBadRequest, "Email already exists.")
		default:
			writeError(w, http.StatusInternalServerError, "Error while registering the user. Error: "+err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, envelope{Data: id})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload authusecase.LoginInput
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	result, err := s.authService.Login(r.Context(), payload)
	if err != nil {
		var verr *validation.Error
		switch {
		case errors.As(err, &verr):
			writeError(w, http.StatusBadRequest, verr.Message)
		case errors.Is(err, authdomain.ErrInvalidCredentials):
			writeError(w, http.StatusBadRequest, "Email or password is wrong. Try again")
		default:
			writeError(w, http.StatusInternalServerError, "Error while logging in. Error: "+err.Error())
		}
		return
	}

	w.Header().Set(tokenHeader, result.Token)
	writeJSON(w, http.StatusOK, envelope{Data: result})
}

func (s *Server) handleDucks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		ducks, err := s.duckService.List(ctx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Error listing ducks. Error: "+err.Error())
			return
		}
		writeJSON(w, http.StatusOK, ducks)
	case http.MethodPost:
		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Invalid Token.")
			return
		}
		var payload duckusecase.CreateInput
		if err := decodeJSON(w, r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		item, err := s.duckService.Create(ctx, claims.AccountID, payload)
		if err != nil {
			s.writeDuckError(w, "Error creating duck", err)
			return
		}
		writeJSON(w, http.StatusCreated, item)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleRandomDuck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	item, err := s.duckService.Random(r.Context())
	if err != nil {
		if errors.Is(err, duckdomain.ErrEmpty) {
			writeError(w, http.StatusNotFound, "No ducks found in the database.")
			return
		}
		writeError(w, http.StatusInternalServerError, "Error fetching random duck. Error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDuckByID(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/ducks/"), "/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}

	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		item, err := s.duckService.Get(ctx, id)
		if err != nil {
			s.writeDuckError(w, "Error fetching duck", err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	case http.MethodPut, http.MethodPatch:
		var payload duckusecase.UpdateInput
		if err := decodeJSON(w, r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		item, err := s.duckService.Update(ctx, id, payload)
		if err != nil {
			s.writeDuckError(w, "Error updating duck", err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	case http.MethodDelete:
		if err := s.duckService.Delete(ctx, id); err != nil {
			s.writeDuckError(w, "Error deleting duck", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}

func (s *Server) writeDuckError(w http.ResponseWriter, prefix string, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, duckdomain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Duck not found.")
	default:
		writeError(w, http.StatusInternalServerError, prefix+". Error: "+err.Error())
	}
}
