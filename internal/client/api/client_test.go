package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gymsync/pkg/api"
)

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/", WithToken("tok"))

	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:8080", client.baseURL)
	assert.Equal(t, "tok", client.token)
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
}

// TestClient_Sync проверяет отправку пачки изменений
func TestClient_Sync(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Проверяем метод, путь и заголовки
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sync", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req api.SyncRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "athlete@example.com", req.UserID)
		require.Len(t, req.WorkoutTemplates, 1)
		assert.Equal(t, "workout-1", req.WorkoutTemplates[0].LocalID)

		_ = json.NewEncoder(w).Encode(api.SyncResponse{
			Success: true,
			Message: "Sync completed",
			Data: &api.SyncMappings{
				WorkoutTemplates: []api.IDMapping{{ID: "srv-1", LocalID: "workout-1"}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithToken("secret"))
	resp, err := client.Sync(context.Background(), &api.SyncRequest{
		UserID:           "athlete@example.com",
		WorkoutTemplates: []api.WorkoutTemplate{{LocalID: "workout-1", Name: "A"}},
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "srv-1", resp.Data.WorkoutTemplates[0].ID)
}

// TestClient_Errors проверяет обработку ответов с ошибкой
func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantContains string
		status       int
	}{
		{
			name:         "json error",
			status:       http.StatusBadRequest,
			body:         `{"success":false,"error":"Bad Request","message":"userId is required"}`,
			wantContains: "server error (400): userId is required",
		},
		{
			name:         "json error without message",
			status:       http.StatusInternalServerError,
			body:         `{"success":false,"error":"identity resolution exhausted"}`,
			wantContains: "server error (500): identity resolution exhausted",
		},
		{
			name:         "plain text",
			status:       http.StatusBadGateway,
			body:         "upstream down",
			wantContains: "server error (502): upstream down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(server.URL).Sync(context.Background(), &api.SyncRequest{UserID: "u"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantContains)

			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.status, statusErr.StatusCode)
		})
	}
}

// TestClient_ContextTimeout проверяет, что запрос ограничен контекстом
func TestClient_ContextTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := NewClient(server.URL).Health(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestClient_ReadEndpoints проверяет пути GET/DELETE запросов
func TestClient_ReadEndpoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/health":
			_ = json.NewEncoder(w).Encode(api.HealthResponse{Status: "ok"})
		case r.Method == http.MethodGet && r.URL.Path == "/sync/user@example.com/status":
			_ = json.NewEncoder(w).Encode(api.StatusResponse{Success: true, UserID: "id-1", LastSyncTime: api.NeverSynced})
		case r.Method == http.MethodGet && r.URL.Path == "/sync/user@example.com":
			_ = json.NewEncoder(w).Encode(api.PullResponse{
				Success: true,
				UserID:  "id-1",
				Data:    &api.SyncData{WorkoutTemplates: []api.WorkoutTemplate{{ID: "srv-1", LocalID: "l-1"}}},
			})
		case r.Method == http.MethodDelete && r.URL.Path == "/sync/user@example.com":
			_ = json.NewEncoder(w).Encode(api.DeleteResponse{Success: true, Message: "deleted"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	ctx := context.Background()
	client := NewClient(server.URL)

	require.NoError(t, client.Health(ctx))

	status, err := client.Status(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, api.NeverSynced, status.LastSyncTime)

	pull, err := client.Pull(ctx, "user@example.com")
	require.NoError(t, err)
	require.NotNil(t, pull.Data)
	assert.Equal(t, "srv-1", pull.Data.WorkoutTemplates[0].ID)

	del, err := client.DeleteAll(ctx, "user@example.com")
	require.NoError(t, err)
	assert.True(t, del.Success)
}

// TestClient_Reachability проверяет сигнал доступности по исходу запроса
func TestClient_Reachability(t *testing.T) {
	var reports []bool
	record := WithReachability(func(online bool) { reports = append(reports, online) })

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	client := NewClient(server.URL, record)

	// Ответ сервера, даже с ошибкой, означает что сеть есть
	_, err := client.Status(context.Background(), "athlete@example.com")
	require.Error(t, err)
	assert.Equal(t, []bool{true}, reports)

	// Отмененный вызывающим запрос ничего не говорит о сети
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.Status(ctx, "athlete@example.com")
	require.Error(t, err)
	assert.Equal(t, []bool{true}, reports)

	server.Close()
	_, err = client.Status(context.Background(), "athlete@example.com")
	require.Error(t, err)
	assert.Equal(t, []bool{true, false}, reports)
}
