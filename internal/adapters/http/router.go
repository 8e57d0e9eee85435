package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/seinn09/digforweb/internal/application"
	"github.com/seinn09/digforweb/internal/domain"
)

const sessionCookieName = "df_session"

type contextKey string

const identityKey contextKey = "identity"

type Handler struct {
	service *application.CaseService
}

func NewRouter(service *application.CaseService) http.Handler {
	h := &Handler{service: service}
	r := chi.NewRouter()

	r.Post("/login", h.handleLogin)
	r.Post("/register-petugas", h.handleRegisterPetugas)
	r.Post("/register-viewer", h.handleRegisterViewer)
	r.Post("/logout", h.handleLogout)

	r.With(h.requireAuth).Get("/auth/whoami", h.handleWhoAmI)

	r.Route("/korban", func(api chi.Router) {
		api.Use(h.requireAuth)
		api.Get("/", h.handleListVictims)
		api.Post("/", h.handleCreateVictim)
		api.Get("/{id}", h.handleGetVictim)
		api.Put("/{id}", h.handleUpdateVictim)
		api.Delete("/{id}", h.handleDeleteVictim)
	})

	r.Route("/kasus", func(api chi.Router) {
		api.Use(h.requireAuth)
		api.Get("/", h.handleListCases)
		api.Post("/", h.handleCreateCase)
		api.Get("/{id}", h.handleGetCase)
		api.Put("/{id}", h.handleUpdateCase)
		api.Delete("/{id}", h.handleDeleteCase)
	})

	r.Route("/evidence", func(api chi.Router) {
		api.Use(h.requireAuth)
		api.Get("/", h.handleListEvidence)
		api.Post("/", h.handleCreateEvidence)
		api.Get("/{id}", h.handleGetEvidence)
		api.Put("/{id}", h.handleUpdateEvidence)
		api.Delete("/{id}", h.handleDeleteEvidence)
	})

	r.Route("/tindakan", func(api chi.Router) {
		api.Use(h.requireAuth)
		api.Get("/", h.handleListActions)
		api.Post("/", h.handleCreateAction)
		api.Get("/{id}", h.handleGetAction)
		api.Put("/{id}", h.handleUpdateAction)
		api.Delete("/{id}", h.handleDeleteAction)
	})

	r.With(h.requireAuth).Get("/dashboard/stats", h.handleStats)
	r.With(h.requireAuth).Get("/audit/logs", h.handleListAuditLogs)

	return r
}

// requireAuth only authenticates; permissions are enforced once, inside
// the service.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := h.authenticateRequest(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey, identity)))
	})
}

func (h *Handler) authenticateRequest(r *http.Request) (domain.Identity, bool) {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		token := strings.TrimSpace(authHeader[7:])
		identity, err := h.service.AuthenticateBearerToken(r.Context(), token)
		if err == nil {
			return identity, true
		}
	}

	c, err := r.Cookie(sessionCookieName)
	if err == nil && strings.TrimSpace(c.Value) != "" {
		identity, authErr := h.service.AuthenticateSession(r.Context(), c.Value)
		if authErr == nil {
			return identity, true
		}
	}

	return domain.Identity{}, false
}

func identityFromContext(ctx context.Context) (domain.Identity, bool) {
	value := ctx.Value(identityKey)
	if value == nil {
		return domain.Identity{}, false
	}
	identity, ok := value.(domain.Identity)
	return identity, ok
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Mode     string `json:"mode"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}

	if strings.ToLower(strings.TrimSpace(req.Mode)) == "session" {
		u, token, err := h.service.LoginWithSession(r.Context(), req.Email, req.Password, 12*time.Hour)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "invalid credentials"})
			return
		}
		h.setSessionCookie(w, token)
		writeJSON(w, http.StatusOK, map[string]any{"message": "login successful", "role": u.Role})
		return
	}

	u, token, err := h.service.Login(r.Context(), req.Email, req.Password, "login")
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "login successful", "token": token, "role": u.Role})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleRegisterPetugas(w http.ResponseWriter, r *http.Request) {
	h.handleRegister(w, r, h.service.RegisterPetugas)
}

func (h *Handler) handleRegisterViewer(w http.ResponseWriter, r *http.Request) {
	h.handleRegister(w, r, h.service.RegisterViewer)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request, register func(context.Context, string, string, string) (domain.User, string, error)) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	u, token, err := register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "registration successful", "token": token, "role": u.Role})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		_ = h.service.LogoutBearer(r.Context(), strings.TrimSpace(authHeader[7:]))
	}
	c, err := r.Cookie(sessionCookieName)
	if err == nil && c.Value != "" {
		_ = h.service.LogoutSession(r.Context(), c.Value)
		h.clearSessionCookie(w)
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "logged out"})
}

func (h *Handler) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":    identity.User.ID,
		"name":  identity.User.Name,
		"email": identity.User.Email,
		"role":  identity.User.Role,
	})
}

// Victims

func (h *Handler) handleListVictims(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	items, err := h.service.ListVictims(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}
	dtos := make([]victimDTO, 0, len(items))
	for _, v := range items {
		dtos = append(dtos, victimToDTO(v))
	}
	writeData(w, http.StatusOK, dtos)
}

func (h *Handler) handleGetVictim(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	v, err := h.service.GetVictim(r.Context(), identity, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, victimToDTO(v))
}

func (h *Handler) handleCreateVictim(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	var req victimDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	v, err := h.service.CreateVictim(r.Context(), identity, req.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, victimToDTO(v))
}

func (h *Handler) handleUpdateVictim(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req victimDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	v, err := h.service.UpdateVictim(r.Context(), identity, id, req.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, victimToDTO(v))
}

func (h *Handler) handleDeleteVictim(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.service.DeleteVictim(r.Context(), identity, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "victim and related records deleted"})
}

// Cases

func (h *Handler) handleListCases(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	items, err := h.service.ListCases(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}
	dtos := make([]caseDTO, 0, len(items))
	for _, c := range items {
		dtos = append(dtos, caseToDTO(c))
	}
	writeData(w, http.StatusOK, dtos)
}

func (h *Handler) handleGetCase(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	c, err := h.service.GetCase(r.Context(), identity, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, caseToDTO(c))
}

func (h *Handler) handleCreateCase(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	var req caseDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	c, err := h.service.CreateCase(r.Context(), identity, req.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, caseToDTO(c))
}

func (h *Handler) handleUpdateCase(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req caseDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	c, err := h.service.UpdateCase(r.Context(), identity, id, req.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, caseToDTO(c))
}

func (h *Handler) handleDeleteCase(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.service.DeleteCase(r.Context(), identity, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "case and related records deleted"})
}

// Evidence

func (h *Handler) handleListEvidence(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	items, err := h.service.ListEvidence(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}
	dtos := make([]evidenceDTO, 0, len(items))
	for _, e := range items {
		dtos = append(dtos, evidenceToDTO(e))
	}
	writeData(w, http.StatusOK, dtos)
}

func (h *Handler) handleGetEvidence(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	e, err := h.service.GetEvidence(r.Context(), identity, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, evidenceToDTO(e))
}

func (h *Handler) handleCreateEvidence(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	var req evidenceDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	e, err := h.service.CreateEvidence(r.Context(), identity, req.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, evidenceToDTO(e))
}

func (h *Handler) handleUpdateEvidence(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req evidenceDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	e, err := h.service.UpdateEvidence(r.Context(), identity, id, req.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, evidenceToDTO(e))
}

func (h *Handler) handleDeleteEvidence(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.service.DeleteEvidence(r.Context(), identity, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "evidence deleted"})
}

// Forensic actions

func (h *Handler) handleListActions(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	items, err := h.service.ListActions(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}
	dtos := make([]actionDTO, 0, len(items))
	for _, a := range items {
		dtos = append(dtos, actionToDTO(a))
	}
	writeData(w, http.StatusOK, dtos)
}

func (h *Handler) handleGetAction(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	a, err := h.service.GetAction(r.Context(), identity, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, actionToDTO(a))
}

func (h *Handler) handleCreateAction(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	var req actionDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	a, err := h.service.CreateAction(r.Context(), identity, req.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, actionToDTO(a))
}

func (h *Handler) handleUpdateAction(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req actionDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	a, err := h.service.UpdateAction(r.Context(), identity, id, req.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, actionToDTO(a))
}

func (h *Handler) handleDeleteAction(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.service.DeleteAction(r.Context(), identity, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "action deleted"})
}

// Dashboard and audit

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	stats, err := h.service.Stats(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, statsDTO{
		Victims:  stats.Victims,
		Cases:    stats.Cases,
		Evidence: stats.Evidence,
		Actions:  stats.Actions,
	})
}

func (h *Handler) handleListAuditLogs(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFromContext(r.Context())
	limit := 200
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid limit"})
			return
		}
		limit = parsed
	}
	logs, err := h.service.ListAuditLogs(r.Context(), identity, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	dtos := make([]auditDTO, 0, len(logs))
	for _, l := range logs {
		dtos = append(dtos, auditToDTO(l))
	}
	writeData(w, http.StatusOK, dtos)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

func parseID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	parsed, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, domain.Invalid("id", "must be a positive integer")
	}
	return uint(parsed), nil
}
