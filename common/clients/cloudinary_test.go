package clients

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/blogify/blogify/common/config"
	"github.com/blogify/blogify/common/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, serverURL string) *CloudinaryClient {
	t.Helper()

	client := NewCloudinaryClient(config.StorageConfig{
		CloudName:     "demo",
		APIKey:        "key",
		APISecret:     "secret",
		Folder:        "blogify",
		UploadTimeout: 5 * time.Second,
	}, logger.New("error", "json"))

	client.baseURL = serverURL
	client.now = func() time.Time { return time.Unix(1700000000, 0) }
	return client
}

func TestCloudinaryClient_Stage_Success(t *testing.T) {
	var gotForm map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/demo/auto/upload", r.URL.Path)
		require.NoError(t, r.ParseForm())

		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/demo/image/upload/v1/blogify/abc.png","public_id":"blogify/abc"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	url, err := client.Stage(context.Background(), []byte("fake-png-bytes"), "image/png", "blogify")
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/v1/blogify/abc.png", url)

	// Payload is a data URI with the declared MIME type
	assert.True(t, strings.HasPrefix(gotForm["file"], "data:image/png;base64,"))
	assert.Equal(t, "key", gotForm["api_key"])
	assert.Equal(t, "blogify", gotForm["folder"])
	assert.Equal(t, "1700000000", gotForm["timestamp"])

	// Signature covers the sorted non-file params plus the secret
	sum := sha1.Sum([]byte("folder=blogify&timestamp=1700000000" + "secret"))
	assert.Equal(t, hex.EncodeToString(sum[:]), gotForm["signature"])
}

func TestCloudinaryClient_Stage_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid image file"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	url, err := client.Stage(context.Background(), []byte("not-an-image"), "image/png", "blogify")
	assert.Empty(t, url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid image file")
}

func TestCloudinaryClient_Stage_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := newTestClient(t, server.URL)

	url, err := client.Stage(context.Background(), []byte("payload"), "image/png", "blogify")
	assert.Empty(t, url)
	assert.Error(t, err)
}

func TestCloudinaryClient_Stage_Preconditions(t *testing.T) {
	client := newTestClient(t, "http://unused.invalid")

	_, err := client.Stage(context.Background(), nil, "image/png", "blogify")
	assert.Error(t, err)

	_, err = client.Stage(context.Background(), []byte("payload"), "", "blogify")
	assert.Error(t, err)
}

func TestCloudinaryClient_Stage_MissingSecureURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"public_id":"blogify/abc"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Stage(context.Background(), []byte("payload"), "image/png", "blogify")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secure_url")
}
