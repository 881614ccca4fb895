package api

import (
	"net/http"

	"github.com/phrazzld/wanderlist-api/internal/api/shared"
	"github.com/phrazzld/wanderlist-api/internal/service"
)

// ActivityHandler serves the activity sub-resource routes.
type ActivityHandler struct {
	activities service.ActivityService
}

// NewActivityHandler creates an ActivityHandler.
func NewActivityHandler(activities service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

// Get handles GET /{id}/{activityId}. The destination id is not consulted;
// the activity is looked up across all destinations.
func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathUUIDs(w, r, paramActivityID)
	if !ok {
		return
	}

	a, err := h.activities.GetOne(r.Context(), ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ActivityResponse{Activity: a})
}

// Append handles POST /activities/{destinationId} and responds with the
// whole parent.
func (h *ActivityHandler) Append(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireActor(w, r)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, paramDestinationID)
	if !ok {
		return
	}

	var req ActivityRequest
	if err := decodeEnvelope(r, ActivityKey, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	d, err := h.activities.Append(r.Context(), ids[0], req.Patch(), actorID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, DestinationResponse{Destination: d})
}

// Update handles PATCH /activities/{destinationId}/{activityId}.
func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireActor(w, r)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, paramDestinationID, paramActivityID)
	if !ok {
		return
	}

	var req ActivityRequest
	if err := decodeEnvelope(r, ActivityKey, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.activities.Update(r.Context(), ids[0], ids[1], req.Patch(), actorID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithStatus(w, http.StatusNoContent)
}

// Remove handles DELETE /activities/{destinationId}/{activityId}.
func (h *ActivityHandler) Remove(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireActor(w, r)
	if !ok {
		return
	}
	ids, ok := pathUUIDs(w, r, paramDestinationID, paramActivityID)
	if !ok {
		return
	}

	if err := h.activities.Remove(r.Context(), ids[0], ids[1], actorID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithStatus(w, http.StatusNoContent)
}
