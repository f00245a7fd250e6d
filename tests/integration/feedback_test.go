package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/eventpulse/feedback-backend/config"
	"github.com/eventpulse/feedback-backend/db"
	"github.com/eventpulse/feedback-backend/handlers"
	"github.com/eventpulse/feedback-backend/internal/store/postgres"
	"github.com/eventpulse/feedback-backend/router"
	"github.com/eventpulse/feedback-backend/services"
	"github.com/eventpulse/feedback-backend/types"
)

// setupTestServer starts a throwaway PostgreSQL container, runs the
// migrations against it and wires the full HTTP stack on top.
func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("feedback_test"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, db.RunMigrations(connStr))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Environment:    config.EnvDevelopment,
			Port:           "8000",
			AllowedOrigins: []string{"*"},
			Version:        "test",
		},
		RateLimit: config.RateLimitConfig{SubmissionsPerMinute: 1000, WindowSeconds: 60},
	}

	feedbackStore := postgres.NewFeedbackStore(pool)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackStore, nil)
	healthHandler := handlers.NewHealthHandler(services.NewHealthService(pool, nil, cfg.Server.Version))

	return router.SetupRouter(router.Dependencies{
		Config:          cfg,
		FeedbackHandler: feedbackHandler,
		HealthHandler:   healthHandler,
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func submission(name, event string, rating int) map[string]interface{} {
	return map[string]interface{}{
		"name":      name,
		"email":     "visitor@example.com",
		"eventName": event,
		"division":  "LnT",
		"rating":    rating,
	}
}

func TestFeedbackLifecycle(t *testing.T) {
	r := setupTestServer(t)

	var firstID, secondID int64

	t.Run("submit feedback", func(t *testing.T) {
		w := doJSON(t, r, "POST", "/api", submission("Alya Putri", "Go Workshop", 4))
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Message string         `json:"message"`
			Data    types.Feedback `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Feedback created successfully", resp.Message)
		assert.NotZero(t, resp.Data.ID)
		assert.Nil(t, resp.Data.Status)
		assert.WithinDuration(t, time.Now(), resp.Data.CreatedAt, time.Minute)
		firstID = resp.Data.ID

		w = doJSON(t, r, "POST", "/api", submission("Budi Santoso", "PR Summit", 5))
		require.Equal(t, http.StatusCreated, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		secondID = resp.Data.ID
	})

	t.Run("list returns newest first", func(t *testing.T) {
		w := doJSON(t, r, "GET", "/api", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Message string           `json:"message"`
			Data    []types.Feedback `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Feedbacks retrieved successfully", resp.Message)
		require.Len(t, resp.Data, 2)
		assert.Equal(t, secondID, resp.Data[0].ID)
		assert.Equal(t, firstID, resp.Data[1].ID)
	})

	t.Run("get by id", func(t *testing.T) {
		w := doJSON(t, r, "GET", fmt.Sprintf("/api/%d", firstID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Alya Putri")

		w = doJSON(t, r, "GET", "/api/999999", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message": "Feedback not found"}`, w.Body.String())
	})

	t.Run("update replaces the record", func(t *testing.T) {
		body := submission("Alya P.", "Go Workshop", 3)
		body["status"] = "in-review"
		w := doJSON(t, r, "PUT", fmt.Sprintf("/api/%d", firstID), body)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data types.Feedback `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Alya P.", resp.Data.Name)
		assert.Equal(t, 3, resp.Data.Rating)
		require.NotNil(t, resp.Data.Status)
		assert.Equal(t, types.FeedbackStatusInReview, *resp.Data.Status)
		// created_at survives the replace
		assert.Equal(t, firstID, resp.Data.ID)
	})

	t.Run("validation errors list every bad field", func(t *testing.T) {
		w := doJSON(t, r, "POST", "/api", map[string]interface{}{
			"name":      "Alya",
			"email":     "not-an-email",
			"eventName": "Go Workshop",
			"division":  "Sales",
			"rating":    4,
		})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Error   string `json:"error"`
			Details []struct {
				Field string `json:"field"`
			} `json:"details"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Invalid request body", resp.Error)
		require.Len(t, resp.Details, 2)
	})

	t.Run("delete removes the record", func(t *testing.T) {
		w := doJSON(t, r, "DELETE", fmt.Sprintf("/api/%d", secondID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message": "Feedback deleted successfully"}`, w.Body.String())

		// A second delete of the same record reports not found
		w = doJSON(t, r, "DELETE", fmt.Sprintf("/api/%d", secondID), nil)
		require.Equal(t, http.StatusNotFound, w.Code)

		w = doJSON(t, r, "GET", "/api", nil)
		var resp struct {
			Data []types.Feedback `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, firstID, resp.Data[0].ID)
	})

	t.Run("readiness reports healthy database", func(t *testing.T) {
		w := doJSON(t, r, "GET", "/health/readiness", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
