package route

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotclip/spotclip/api/controller"
	"github.com/spotclip/spotclip/bootstrap"
	"github.com/spotclip/spotclip/domain"
	"github.com/spotclip/spotclip/repository"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)

	env := &bootstrap.Env{
		AppEnv:              "test",
		ContextTimeout:      5,
		ModelTimeoutSeconds: 5,
		VisionModel:         "gpt-4o-mini",
		TaggingModel:        "gpt-4o-mini",
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repository.NewCollectionMemoryRepository()

	engine := gin.New()
	Setup(env, logger, 5*time.Second, store, engine)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), out))
}

func multipartRequest(t *testing.T, url string, files map[string][]byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if url != "" {
		require.NoError(t, writer.WriteField("tiktok_url", url))
	}
	for name, data := range files {
		part, err := writer.CreateFormFile("media", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/clips/ingest", &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	return request
}

func TestHealthEndpoint(t *testing.T) {
	engine := newTestEngine()

	recorder := doJSON(t, engine, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]string
	decodeBody(t, recorder, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestIngestValidation(t *testing.T) {
	engine := newTestEngine()

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, multipartRequest(t, "", map[string][]byte{"clip.mp4": mp4Bytes()}))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	var body controller.ErrorMessage
	decodeBody(t, recorder, &body)
	assert.Equal(t, "tiktok_url is required", body.Error)

	recorder = httptest.NewRecorder()
	engine.ServeHTTP(recorder, multipartRequest(t, "https://www.tiktok.com/@a/video/1", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	decodeBody(t, recorder, &body)
	assert.Equal(t, "At least one media file is required", body.Error)
}

func TestIngestVideoUsesMockCatalog(t *testing.T) {
	engine := newTestEngine()

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, multipartRequest(t, "https://www.tiktok.com/@a/video/1", map[string][]byte{
		"clip.mp4": mp4Bytes(),
	}))
	require.Equal(t, http.StatusOK, recorder.Code)

	var result domain.IngestResult
	decodeBody(t, recorder, &result)
	assert.NotEmpty(t, result.ClipID)
	assert.Empty(t, result.Error)
	assert.GreaterOrEqual(t, len(result.Places), 2)
	assert.LessOrEqual(t, len(result.Places), 4)
	for _, place := range result.Places {
		assert.NotEmpty(t, place.ID)
		assert.NotEmpty(t, place.Name)
	}
}

func TestIngestImagesWithoutAPIKeyDegrades(t *testing.T) {
	engine := newTestEngine()

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, multipartRequest(t, "https://www.tiktok.com/@a/video/1", map[string][]byte{
		"frame0.png": pngBytes(),
	}))
	require.Equal(t, http.StatusOK, recorder.Code)

	var result domain.IngestResult
	decodeBody(t, recorder, &result)
	assert.NotEmpty(t, result.ClipID)
	assert.Empty(t, result.Places)
	assert.NotEmpty(t, result.Error)
}

func TestCollectionLifecycle(t *testing.T) {
	engine := newTestEngine()

	// Creating without a name fails validation.
	recorder := doJSON(t, engine, http.MethodPost, "/collections/trip-1/places", gin.H{
		"places": []gin.H{{"name": "Shibuya Crossing"}},
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// First save with a name creates.
	recorder = doJSON(t, engine, http.MethodPost, "/collections/trip-1/places", gin.H{
		"name": "Tokyo Trip",
		"places": []gin.H{{
			"name":       "Shibuya Crossing",
			"city_guess": "Tokyo",
			"confidence": 0.87,
			"evidence":   gin.H{"source": "frame", "index": 3},
		}},
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var saved controller.SavePlacesResponse
	decodeBody(t, recorder, &saved)
	require.NotNil(t, saved.Collection)
	assert.Equal(t, "Tokyo Trip", saved.Collection.Name)
	require.Len(t, saved.Collection.Places, 1)
	placeID := saved.Collection.Places[0].ID
	require.NotEmpty(t, placeID)

	// Second save appends and answers 200.
	recorder = doJSON(t, engine, http.MethodPost, "/collections/trip-1/places", gin.H{
		"places": []gin.H{{
			"name":     "Golden Gai",
			"evidence": gin.H{"source": "audio", "timestamp_s": 14.5},
		}},
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	decodeBody(t, recorder, &saved)
	require.Len(t, saved.Collection.Places, 2)
	assert.Equal(t, "Shibuya Crossing", saved.Collection.Places[0].Name)
	assert.Equal(t, "Golden Gai", saved.Collection.Places[1].Name)

	// Get returns the collection.
	recorder = doJSON(t, engine, http.MethodGet, "/collections/trip-1", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var collection domain.Collection
	decodeBody(t, recorder, &collection)
	assert.Equal(t, "trip-1", collection.ID)
	assert.Len(t, collection.Places, 2)

	// List includes it.
	recorder = doJSON(t, engine, http.MethodGet, "/collections", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var list controller.CollectionsListResponse
	decodeBody(t, recorder, &list)
	require.Len(t, list.Collections, 1)

	// Patch favorite and note, then favorites surfaces the place.
	recorder = doJSON(t, engine, http.MethodPatch, "/collections/trip-1/places/"+placeID, gin.H{
		"isFavorite": true,
		"note":       "go at night",
		"tags":       []string{"viewpoint"},
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	decodeBody(t, recorder, &collection)
	patched := collection.Places[0]
	assert.True(t, patched.IsFavorite)
	require.NotNil(t, patched.Note)
	assert.Equal(t, "go at night", *patched.Note)
	assert.Equal(t, []string{"viewpoint"}, patched.Tags)

	recorder = doJSON(t, engine, http.MethodGet, "/favorites", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var favorites controller.FavoritesResponse
	decodeBody(t, recorder, &favorites)
	require.Len(t, favorites.Favorites, 1)
	assert.Equal(t, placeID, favorites.Favorites[0].ID)
	assert.Equal(t, "trip-1", favorites.Favorites[0].CollectionID)
	assert.Equal(t, "Tokyo Trip", favorites.Favorites[0].CollectionName)

	// Delete removes the place.
	recorder = doJSON(t, engine, http.MethodDelete, "/collections/trip-1/places/"+placeID, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	decodeBody(t, recorder, &collection)
	assert.Len(t, collection.Places, 1)
}

func TestCollectionErrors(t *testing.T) {
	engine := newTestEngine()

	recorder := doJSON(t, engine, http.MethodGet, "/collections/missing", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = doJSON(t, engine, http.MethodPatch, "/collections/missing/places/p1", gin.H{"isFavorite": true})
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = doJSON(t, engine, http.MethodDelete, "/collections/missing/places/p1", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	// Tag vocabulary violations come back as 400.
	recorder = doJSON(t, engine, http.MethodPost, "/collections/trip-1/places", gin.H{
		"name":   "Trip",
		"places": []gin.H{{"name": "Somewhere"}},
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	var saved controller.SavePlacesResponse
	decodeBody(t, recorder, &saved)
	placeID := saved.Collection.Places[0].ID

	recorder = doJSON(t, engine, http.MethodPatch, "/collections/trip-1/places/"+placeID, gin.H{
		"tags": []string{"invalid-tag"},
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doJSON(t, engine, http.MethodPatch, "/collections/trip-1/places/"+placeID, gin.H{
		"tags": []string{"coffee", "bar", "club", "restaurant"},
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestTagSuggestionEndpoint(t *testing.T) {
	engine := newTestEngine()

	recorder := doJSON(t, engine, http.MethodPost, "/places/tags", gin.H{"city": "Paris"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	var errBody controller.ErrorMessage
	decodeBody(t, recorder, &errBody)
	assert.Equal(t, "name is required", errBody.Error)

	// Without an API key the suggester degrades to an empty list.
	recorder = doJSON(t, engine, http.MethodPost, "/places/tags", gin.H{"name": "Café de Flore", "city": "Paris"})
	require.Equal(t, http.StatusOK, recorder.Code)
	var body controller.TagSuggestionResponse
	decodeBody(t, recorder, &body)
	assert.NotNil(t, body.Tags)
	assert.Empty(t, body.Tags)
}

func pngBytes() []byte {
	return []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
}

func mp4Bytes() []byte {
	return append([]byte{0x00, 0x00, 0x00, 0x18}, []byte("ftypmp42")...)
}
