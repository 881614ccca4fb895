package api_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type activityBody struct {
	Activity struct {
		ID       uuid.UUID  `json:"id"`
		Name     string     `json:"name"`
		Address  string     `json:"address"`
		Priority *int       `json:"priority"`
		Owner    *uuid.UUID `json:"owner"`
	} `json:"activity"`
}

func TestActivityHandler_Append(t *testing.T) {
	env := newTestEnv(t)
	owner := uuid.New()
	d := env.createDestination(t, "Cairo", owner)

	rec := env.do(t, http.MethodPost, "/activities/"+d.Destination.ID.String(), map[string]any{
		"activity": map[string]any{"name": "Pyramids", "address": "", "priority": 1, "owner": uuid.NewString()},
	}, owner)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode[destinationBody](t, rec)
	assert.Equal(t, d.Destination.ID, body.Destination.ID)
	require.Len(t, body.Destination.Activities, 1)
	a := body.Destination.Activities[0]
	assert.Equal(t, "Pyramids", a.Name)
	require.NotNil(t, a.Owner)
	assert.Equal(t, owner, *a.Owner)

	t.Run("not the owner", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/activities/"+d.Destination.ID.String(), map[string]any{
			"activity": map[string]any{"name": "Sphinx"},
		}, uuid.New())
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("unknown destination", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/activities/"+uuid.NewString(), map[string]any{
			"activity": map[string]any{"name": "Sphinx"},
		}, owner)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("missing name", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/activities/"+d.Destination.ID.String(), map[string]any{
			"activity": map[string]any{"address": "Giza"},
		}, owner)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("wrong envelope", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/activities/"+d.Destination.ID.String(), map[string]any{
			"destination": map[string]any{"name": "Sphinx"},
		}, owner)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no token", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/activities/"+d.Destination.ID.String(), map[string]any{
			"activity": map[string]any{"name": "Sphinx"},
		}, uuid.Nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	got := decode[destinationBody](t, env.do(t, http.MethodGet, "/"+d.Destination.ID.String(), nil, uuid.Nil))
	assert.Len(t, got.Destination.Activities, 1, "rejected appends must not persist")
}

func TestActivityHandler_Get(t *testing.T) {
	env := newTestEnv(t)
	owner := uuid.New()
	d := env.createDestination(t, "Rome", owner)
	withActivity := env.appendActivity(t, d.Destination.ID, "Colosseum", owner)
	activityID := withActivity.Destination.Activities[0].ID.String()

	rec := env.do(t, http.MethodGet, "/"+d.Destination.ID.String()+"/"+activityID, nil, uuid.Nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Colosseum", decode[activityBody](t, rec).Activity.Name)

	// The destination segment is not consulted.
	rec = env.do(t, http.MethodGet, "/"+uuid.NewString()+"/"+activityID, nil, uuid.Nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Colosseum", decode[activityBody](t, rec).Activity.Name)

	rec = env.do(t, http.MethodGet, "/"+d.Destination.ID.String()+"/"+uuid.NewString(), nil, uuid.Nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/"+d.Destination.ID.String()+"/nope", nil, uuid.Nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestActivityHandler_UpdateAndRemove(t *testing.T) {
	env := newTestEnv(t)
	owner := uuid.New()
	d := env.createDestination(t, "Berlin", owner)
	env.appendActivity(t, d.Destination.ID, "Reichstag", owner)
	withTwo := env.appendActivity(t, d.Destination.ID, "Tiergarten", owner)
	require.Len(t, withTwo.Destination.Activities, 2)

	first := withTwo.Destination.Activities[0].ID.String()
	second := withTwo.Destination.Activities[1].ID.String()
	base := "/activities/" + d.Destination.ID.String() + "/"

	rec := env.do(t, http.MethodPatch, base+first, map[string]any{
		"activity": map[string]any{"name": "", "address": "Platz der Republik 1", "priority": 2},
	}, owner)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	got := decode[activityBody](t, env.do(t, http.MethodGet, "/"+d.Destination.ID.String()+"/"+first, nil, uuid.Nil))
	assert.Equal(t, "Reichstag", got.Activity.Name)
	assert.Equal(t, "Platz der Republik 1", got.Activity.Address)
	require.NotNil(t, got.Activity.Priority)
	assert.Equal(t, 2, *got.Activity.Priority)

	rec = env.do(t, http.MethodPatch, base+first, map[string]any{
		"activity": map[string]any{"name": "Stolen"},
	}, uuid.New())
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPatch, base+uuid.NewString(), map[string]any{
		"activity": map[string]any{"name": "Ghost"},
	}, owner)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, base+first, nil, uuid.New())
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodDelete, base+first, nil, owner)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = env.do(t, http.MethodDelete, base+first, nil, owner)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	parent := decode[destinationBody](t, env.do(t, http.MethodGet, "/destinations/"+d.Destination.ID.String(), nil, uuid.Nil))
	require.Len(t, parent.Destination.Activities, 1)
	assert.Equal(t, second, parent.Destination.Activities[0].ID.String())

	rec = env.do(t, http.MethodDelete, "/activities/"+d.Destination.ID.String()+"/bad", nil, owner)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
