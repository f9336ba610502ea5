package advisor

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/chronora/retailops/pkg/errors"
	"github.com/chronora/retailops/pkg/httputil"
	"github.com/chronora/retailops/pkg/logger"
)

// Handler exposes the advisor workspace over HTTP. All routes except login
// require a bearer session token.
type Handler struct {
	store    *Store
	sessions SessionStore
	pin      string
	logger   *slog.Logger
}

// NewHandler creates an advisor handler.
func NewHandler(store *Store, sessions SessionStore, pin string, log *slog.Logger) *Handler {
	return &Handler{store: store, sessions: sessions, pin: pin, logger: log}
}

// Routes builds the advisor routing tree, mounted under /api/v1/advisor.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(h.requireSession)
		r.Post("/logout", h.Logout)
		r.Get("/customers", h.SearchCustomers)
		r.Get("/customers/{id}", h.GetCustomer)
		r.Get("/tasks", h.ListTasks)
		r.Post("/tasks/{id}/complete", h.CompleteTask)
		r.Get("/templates", h.ListTemplates)
		r.Post("/messages", h.SendMessage)
		r.Get("/dashboard", h.Dashboard)
	})

	return r
}

// requireSession authenticates the bearer token and stores the advisor ID in
// the request context for logging.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" || token == r.Header.Get("Authorization") {
			httputil.WriteError(w, r, apperrors.Unauthorized("missing bearer token"), h.logger)
			return
		}

		advisorID, err := h.sessions.Get(r.Context(), token)
		if err != nil {
			httputil.WriteError(w, r, apperrors.Unauthorized("invalid or expired session"), h.logger)
			return
		}

		ctx := logger.WithAdvisorID(r.Context(), advisorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type loginRequest struct {
	PIN string `json:"pin"`
}

type loginResponse struct {
	Token   string  `json:"token"`
	Advisor Advisor `json:"advisor"`
}

// Login handles POST /login. A correct PIN issues a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid JSON body"), h.logger)
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.PIN), []byte(h.pin)) != 1 {
		httputil.WriteError(w, r, apperrors.Unauthorized("invalid PIN"), h.logger)
		return
	}

	adv := h.store.Advisor()
	token, err := h.sessions.Create(r.Context(), adv.ID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.logger.InfoContext(r.Context(), "advisor logged in", slog.String("advisor_id", adv.ID))
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: loginResponse{Token: token, Advisor: adv}})
}

// Logout handles POST /logout, revoking the current session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if err := h.sessions.Delete(r.Context(), token); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"message": "logged out"}})
}

// SearchCustomers handles GET /customers?query=.
func (h *Handler) SearchCustomers(w http.ResponseWriter, r *http.Request) {
	customers := h.store.SearchCustomers(r.URL.Query().Get("query"))
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: customers})
}

// GetCustomer handles GET /customers/{id}.
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.store.GetCustomer(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: customer})
}

// ListTasks handles GET /tasks.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.store.ListTasks()})
}

// CompleteTask handles POST /tasks/{id}/complete.
func (h *Handler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.store.CompleteTask(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: task})
}

// ListTemplates handles GET /templates.
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.store.ListTemplates()})
}

type sendMessageRequest struct {
	CustomerID string `json:"customer_id"`
	TemplateID string `json:"template_id"`
	Body       string `json:"body"`
}

// SendMessage handles POST /messages.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid JSON body"), h.logger)
		return
	}

	msg, err := h.store.SendMessage(req.CustomerID, req.TemplateID, req.Body)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: msg})
}

// Dashboard handles GET /dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.store.Metrics()})
}
