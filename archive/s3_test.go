// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package archive

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/classrep/models"
)

func testSnapshot() models.ResultSnapshot {
	return models.ResultSnapshot{
		ID:         "5b1f0c3e-8a55-4c1e-9d7e-2f7d7b1c0a11",
		ComputedAt: time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC),
		InputsHash: "abc123",
		Results: models.Results{
			Scores: map[string]map[string]int{"10A": {"Bob": 3}},
		},
	}
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t,
		"snapshots/2025/03/07/5b1f0c3e-8a55-4c1e-9d7e-2f7d7b1c0a11.json",
		ObjectKey(testSnapshot()))
}

func TestNewS3_RequiresBucket(t *testing.T) {
	_, err := NewS3(context.Background(), S3Config{Region: "us-east-1"})
	require.Error(t, err)
}

func TestArchiveSnapshot(t *testing.T) {
	var (
		mu     sync.Mutex
		method string
		path   string
		body   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		method, path, body = r.Method, r.URL.Path, string(b)
		mu.Unlock()
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a, err := NewS3(context.Background(), S3Config{
		Bucket:    "classrep-results",
		Region:    "us-east-1",
		Endpoint:  srv.URL,
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	require.NoError(t, err)

	uri, err := a.ArchiveSnapshot(context.Background(), testSnapshot())
	require.NoError(t, err)
	assert.Equal(t, "s3://classrep-results/snapshots/2025/03/07/5b1f0c3e-8a55-4c1e-9d7e-2f7d7b1c0a11.json", uri)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/classrep-results/snapshots/2025/03/07/5b1f0c3e-8a55-4c1e-9d7e-2f7d7b1c0a11.json", path)
	assert.Contains(t, body, `"inputs_hash":"abc123"`)
}

func TestArchiveSnapshot_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`)
	}))
	defer srv.Close()

	a, err := NewS3(context.Background(), S3Config{
		Bucket:    "classrep-results",
		Region:    "us-east-1",
		Endpoint:  srv.URL,
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	require.NoError(t, err)

	_, err = a.ArchiveSnapshot(context.Background(), testSnapshot())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload snapshot")
}
