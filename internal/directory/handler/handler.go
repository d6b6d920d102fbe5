package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"supportdir/internal/directory/models"
	"supportdir/internal/geo"
	"supportdir/pkg/derrors"
	"supportdir/pkg/platform/httputil"
)

// Service defines the directory operations the HTTP layer needs.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Organisation, error)
	List(ctx context.Context) ([]*models.Organisation, error)
	Create(ctx context.Context, org *models.Organisation) (*geo.Warning, error)
	UpdateAddress(ctx context.Context, id uuid.UUID, addr models.Address) (*models.Organisation, *geo.Warning, error)
}

// Handler wires directory endpoints to the directory service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a directory handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts directory endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/organisations", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Get("/{id}", h.HandleGet)
		r.Put("/{id}/address", h.HandleUpdateAddress)
	})
}

// HandleList handles GET /organisations.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.service.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list organisations failed", "error", err)
		httputil.WriteError(w, err)
		return
	}

	resp := make([]OrganisationResponse, 0, len(orgs))
	for _, org := range orgs {
		resp = append(resp, toOrganisationResponse(org, nil))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /organisations/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	org, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toOrganisationResponse(org, nil))
}

// HandleCreate handles POST /organisations.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[CreateOrganisationRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	org := req.toModel()
	warning, err := h.service.Create(r.Context(), org)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "create organisation failed",
			"name", req.Name, "error", err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "organisation created via api",
		"organisation_id", org.ID, "geocode_warning", warning != nil)
	httputil.WriteJSON(w, http.StatusCreated, toOrganisationResponse(org, warning))
}

// HandleUpdateAddress handles PUT /organisations/{id}/address.
func (h *Handler) HandleUpdateAddress(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, err := httputil.Decode[UpdateAddressRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	org, warning, err := h.service.UpdateAddress(r.Context(), id, req.Address.toModel())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "update address failed",
			"organisation_id", id, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toOrganisationResponse(org, warning))
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, derrors.New(derrors.CategoryValidation, "directory.http", "invalid organisation id", err)
	}
	return id, nil
}
