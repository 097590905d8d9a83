package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClient creates a Client backed by a test HTTP server.
func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := s3.New(s3.Options{
		Region:       "fsn1",
		BaseEndpoint: aws.String(server.URL),
		UsePathStyle: true,
		Credentials:  credentials.NewStaticCredentialsProvider("test-key", "test-secret", ""),
	})
	return &Client{s3: client, region: "fsn1"}
}

func xmlResponse(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(body))
}

func s3Error(code string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>%s</Code><Message>%s</Message></Error>`, code, code)
}

// memoryStore is a tiny path-style object store.
type memoryStore struct {
	mu      sync.Mutex
	buckets map[string]bool
	objects map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{buckets: map[string]bool{}, objects: map[string][]byte{}}
}

func (m *memoryStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/")
	bucket, key, hasKey := strings.Cut(path, "/")

	if !hasKey || key == "" {
		switch r.Method {
		case http.MethodHead:
			if !m.buckets[bucket] {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusOK)
		case http.MethodPut:
			m.buckets[bucket] = true
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		m.objects[path] = body
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		data, ok := m.objects[path]
		if !ok {
			xmlResponse(w, http.StatusNotFound, s3Error("NoSuchKey"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	case http.MethodDelete:
		delete(m.objects, path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	client, err := NewClient("https://fsn1.your-objectstorage.com", "fsn1", "ak", "sk", WithPathStyle(true))
	require.NoError(t, err)
	assert.Equal(t, "fsn1", client.region)

	_, err = NewClient("https://fsn1.your-objectstorage.com", "fsn1", "", "")
	assert.ErrorContains(t, err, "access key and secret key are required")
}

func TestEnsureBucket(t *testing.T) {
	t.Parallel()
	store := newMemoryStore()
	client := testClient(t, store)
	ctx := context.Background()

	require.NoError(t, client.EnsureBucket(ctx, "fxstack-state"))
	assert.True(t, store.buckets["fxstack-state"])

	// Second call finds the bucket.
	require.NoError(t, client.EnsureBucket(ctx, "fxstack-state"))
}

func TestEnsureBucket_AlreadyOwnedByYou(t *testing.T) {
	t.Parallel()
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		xmlResponse(w, http.StatusConflict, s3Error("BucketAlreadyOwnedByYou"))
	}))

	assert.NoError(t, client.EnsureBucket(context.Background(), "fxstack-state"))
}

func TestEnsureBucket_Forbidden(t *testing.T) {
	t.Parallel()
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	err := client.EnsureBucket(context.Background(), "fxstack-state")
	assert.ErrorContains(t, err, "failed to check bucket fxstack-state")
}

func TestObjectLifecycle(t *testing.T) {
	t.Parallel()
	store := newMemoryStore()
	client := testClient(t, store)
	ctx := context.Background()

	type doc struct {
		IP string `json:"ip"`
	}
	require.NoError(t, client.PutJSON(ctx, "b", "rates/outputs.json", doc{IP: "203.0.113.10"}))

	var got doc
	require.NoError(t, client.GetJSON(ctx, "b", "rates/outputs.json", &got))
	assert.Equal(t, "203.0.113.10", got.IP)

	require.NoError(t, client.DeleteObject(ctx, "b", "rates/outputs.json"))

	_, err := client.GetObject(ctx, "b", "rates/outputs.json")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	// Deleting again is fine.
	assert.NoError(t, client.DeleteObject(ctx, "b", "rates/outputs.json"))
}

func TestGetJSON_InvalidDocument(t *testing.T) {
	t.Parallel()
	store := newMemoryStore()
	store.objects["b/k"] = []byte("{not json")
	client := testClient(t, store)

	var v map[string]string
	err := client.GetJSON(context.Background(), "b", "k", &v)
	assert.ErrorContains(t, err, "failed to parse k")
}

func TestPutObject_Error(t *testing.T) {
	t.Parallel()
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		xmlResponse(w, http.StatusForbidden, s3Error("AccessDenied"))
	}))

	err := client.PutObject(context.Background(), "b", "k", "", []byte("x"))
	assert.ErrorContains(t, err, "failed to put object k in bucket b")
}

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	assert.False(t, isNotFoundError(nil))
	assert.True(t, isNotFoundError(&s3types.NoSuchKey{}))
	assert.True(t, isNotFoundError(fmt.Errorf("wrapped: %w", &s3types.NoSuchBucket{})))
	assert.True(t, isNotFoundError(&smithy.GenericAPIError{Code: "404"}))
	assert.False(t, isNotFoundError(errors.New("boom")))

	assert.False(t, isBucketAlreadyOwnedByYou(nil))
	assert.True(t, isBucketAlreadyOwnedByYou(&s3types.BucketAlreadyOwnedByYou{}))
	assert.True(t, isBucketAlreadyOwnedByYou(&smithy.GenericAPIError{Code: "BucketAlreadyOwnedByYou"}))
	assert.False(t, isBucketAlreadyOwnedByYou(&smithy.GenericAPIError{Code: "AccessDenied"}))
}
