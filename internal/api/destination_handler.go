package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/wanderlist-api/internal/api/shared"
	"github.com/phrazzld/wanderlist-api/internal/platform/logger"
	"github.com/phrazzld/wanderlist-api/internal/service"
)

// Path parameter names.
const (
	paramID            = "id"
	paramDestinationID = "destinationId"
	paramActivityID    = "activityId"
)

// DestinationHandler serves the destination routes.
type DestinationHandler struct {
	destinations service.DestinationService
	logger       *slog.Logger
}

// NewDestinationHandler creates a DestinationHandler.
func NewDestinationHandler(destinations service.DestinationService, logger *slog.Logger) *DestinationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DestinationHandler{
		destinations: destinations,
		logger:       logger.With(slog.String("component", "destination_handler")),
	}
}

// List handles GET /destinations.
func (h *DestinationHandler) List(w http.ResponseWriter, r *http.Request) {
	destinations, err := h.destinations.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DestinationListResponse{Destinations: destinations})
}

// Get handles GET /destinations/{id} and GET /{id}.
func (h *DestinationHandler) Get(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathUUIDs(w, r, paramID)
	if !ok {
		return
	}

	d, err := h.destinations.GetByID(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DestinationResponse{Destination: d})
}

// Create handles POST /destinations and POST /destinations/{id}. Any path
// id is ignored; the new destination gets a generated one.
func (h *DestinationHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req DestinationRequest
	if err := decodeEnvelope(r, DestinationKey, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	d, err := h.destinations.Create(r.Context(), req.Patch(), actorID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("destination create served",
		slog.String("destination_id", d.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, DestinationResponse{Destination: d})
}

// Update handles PATCH /destinations/{id}.
func (h *DestinationHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireActor(w, r)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, paramID)
	if !ok {
		return
	}

	var req DestinationRequest
	if err := decodeEnvelope(r, DestinationKey, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.destinations.Update(r.Context(), ids[0], req.Patch(), actorID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithStatus(w, http.StatusNoContent)
}

// Delete handles DELETE /destinations/{id}.
func (h *DestinationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireActor(w, r)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, paramID)
	if !ok {
		return
	}

	if err := h.destinations.Delete(r.Context(), ids[0], actorID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithStatus(w, http.StatusNoContent)
}
