package s3_test

import (
	"context"
	"hotel/config"
	"hotel/infras/otel/mocks"
	"hotel/infras/s3"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method      string
	path        string
	contentType string
	body        string
}

func newStorage(t *testing.T, status int) (s3.S3, *[]captured) {
	t.Helper()

	var (
		mu       sync.Mutex
		requests []captured
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		mu.Lock()
		requests = append(requests, captured{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			body:        string(body),
		})
		mu.Unlock()

		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.External.S3.APIEndpoint = server.URL
	cfg.External.S3.PublicDomain = "https://files.example.com/"
	cfg.External.S3.BucketName = "hotel"
	cfg.External.S3.Region = "auto"
	cfg.External.S3.AccessKeyID = "key"
	cfg.External.S3.SecretAccessKey = "secret"

	return s3.New(cfg, mocks.NewOtel()), &requests
}

func TestUploadJSON(t *testing.T) {
	storage, requests := newStorage(t, http.StatusOK)

	url, err := storage.UploadJSON(context.Background(), "folios", "booking-1.json", map[string]any{"booking_id": "booking-1"})
	require.NoError(t, err)

	assert.Equal(t, "https://files.example.com/folios/booking-1.json", url)
	require.Len(t, *requests, 1)

	req := (*requests)[0]
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, "/hotel/folios/booking-1.json", req.path)
	assert.Equal(t, "application/json", req.contentType)
	assert.Contains(t, req.body, `"booking_id": "booking-1"`)
}

func TestUploadFailure(t *testing.T) {
	storage, _ := newStorage(t, http.StatusForbidden)

	url, err := storage.Upload(context.Background(), "exports", "bookings.xlsx", "application/octet-stream", []byte("data"))

	assert.Error(t, err)
	assert.Empty(t, url)
}

func TestDelete(t *testing.T) {
	storage, requests := newStorage(t, http.StatusNoContent)

	err := storage.Delete(context.Background(), "folios", "booking-1.json")
	require.NoError(t, err)

	require.Len(t, *requests, 1)
	assert.Equal(t, http.MethodDelete, (*requests)[0].method)
	assert.Equal(t, "/hotel/folios/booking-1.json", (*requests)[0].path)
}
