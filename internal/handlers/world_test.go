package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwright-games/worldweaver/internal/services"
	"github.com/jwright-games/worldweaver/internal/storage"
	"github.com/jwright-games/worldweaver/pkg/locale"
	"github.com/jwright-games/worldweaver/pkg/world"
)

const worldReply = `{
  "title": "The Drowned March",
  "summary": "A fen kingdom sinking one finger-width a year.",
  "initial_hook": "The bell of the sunken chapel rings at dusk.",
  "locations": [{"name": "Saltmire", "description": "A town on stilts."}],
  "characters": [{"name": "Warden Ila", "role": "guard captain", "short_desc": "Keeps the causeway."}],
  "logic": {"tech_level": "medieval", "magic_allowed": true, "tone": "somber"}
}`

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestWorldHandler_Create(t *testing.T) {
	store := storage.NewMockStorage()
	gen := &services.MockLLM{Responses: []string{worldReply, "Silence the chapel bell."}}
	h := NewWorldHandler(store, gen, testLogger())

	rec := postJSON(t, h, "/v1/worlds", CreateWorldRequest{
		Name: "drowned-march",
		Idea: "a sinking fen kingdom",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created world.World
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "The Drowned March", created.Title)
	assert.Equal(t, "Silence the chapel bell.", created.MainQuest)

	stored, err := store.LoadWorld(context.Background(), "drowned-march")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "The Drowned March", stored.Title)
}

func TestWorldHandler_CreateValidation(t *testing.T) {
	h := NewWorldHandler(storage.NewMockStorage(), &services.MockLLM{}, testLogger())

	tests := []struct {
		name string
		body CreateWorldRequest
	}{
		{"missing name", CreateWorldRequest{Idea: "an idea"}},
		{"missing idea", CreateWorldRequest{Name: "a-name"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h, "/v1/worlds", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestWorldHandler_ReadAndList(t *testing.T) {
	store := storage.NewMockStorage()
	w := world.New("alpha", locale.English)
	w.Title = "Alpha"
	require.NoError(t, store.SaveWorld(context.Background(), w))

	h := NewWorldHandler(store, &services.MockLLM{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/worlds/alpha", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got world.World
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Alpha", got.Title)

	req = httptest.NewRequest(http.MethodGet, "/v1/worlds", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list WorldListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Equal(t, []string{"alpha"}, list.Worlds)
}

func TestWorldHandler_ReadMissing(t *testing.T) {
	h := NewWorldHandler(storage.NewMockStorage(), &services.MockLLM{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/worlds/nope", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWorldHandler_Delete(t *testing.T) {
	store := storage.NewMockStorage()
	require.NoError(t, store.SaveWorld(context.Background(), world.New("gone", locale.English)))

	h := NewWorldHandler(store, &services.MockLLM{}, testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/v1/worlds/gone", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	loaded, err := store.LoadWorld(context.Background(), "gone")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
