package clients

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/blogify/blogify/common/config"
)

// AssetStager commits a transient in-memory asset to a remote object
// store and returns its durable content address. Implementations make a
// single attempt; retry policy belongs to the caller, and today the
// caller's policy is "don't".
type AssetStager interface {
	Stage(ctx context.Context, data []byte, mimeType, folder string) (string, error)
}

// CloudinaryClient stages assets through the Cloudinary upload API.
// The payload is sent as a base64 data URI with resource_type "auto" so
// the remote service infers image/video/raw handling on its own.
type CloudinaryClient struct {
	http      *HTTPClient
	logger    Logger
	cloudName string
	apiKey    string
	apiSecret string

	// baseURL is overridable in tests
	baseURL string
	now     func() time.Time
}

// NewCloudinaryClient creates a Cloudinary upload client with a bounded
// request timeout. Uploads are deliberately not tied to the inbound
// request's cancellation: an abandoned browser request is allowed to
// finish staging rather than leave the remote store in an unknown state.
func NewCloudinaryClient(cfg config.StorageConfig, logger Logger) *CloudinaryClient {
	httpClient := &http.Client{
		Timeout: cfg.UploadTimeout,
	}

	return &CloudinaryClient{
		http:      NewHTTPClient(httpClient, logger),
		logger:    logger,
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		baseURL:   "https://api.cloudinary.com/v1_1",
		now:       time.Now,
	}
}

// uploadResponse is the subset of the upload API response we consume
type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Stage uploads the buffer and returns the secure URL of the stored
// asset. Preconditions: non-empty buffer, non-empty MIME type.
func (c *CloudinaryClient) Stage(ctx context.Context, data []byte, mimeType, folder string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty asset buffer")
	}
	if mimeType == "" {
		return "", fmt.Errorf("missing MIME type")
	}

	dataURI := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
	timestamp := fmt.Sprintf("%d", c.now().Unix())

	form := url.Values{}
	form.Set("file", dataURI)
	form.Set("api_key", c.apiKey)
	form.Set("timestamp", timestamp)
	form.Set("folder", folder)
	form.Set("signature", c.sign(map[string]string{
		"folder":    folder,
		"timestamp": timestamp,
	}))

	endpoint := fmt.Sprintf("%s/%s/auto/upload", c.baseURL, c.cloudName)

	// Detached from the request context: let an in-flight upload finish
	// even if the client disconnected. The HTTP client timeout bounds it.
	uploadCtx := context.WithoutCancel(ctx)

	resp, err := c.http.DoRequest(uploadCtx, http.MethodPost, endpoint, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		c.logger.Error("asset upload failed", "error", err)
		return "", fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read upload response: %w", err)
	}

	var result uploadResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode upload response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("asset upload rejected",
			"status", resp.StatusCode,
			"message", result.Error.Message,
		)
		return "", fmt.Errorf("upload rejected (status %d): %s", resp.StatusCode, result.Error.Message)
	}

	if result.SecureURL == "" {
		return "", fmt.Errorf("upload response missing secure_url")
	}

	c.logger.Info("asset staged",
		"public_id", result.PublicID,
		"bytes", len(data),
		"mime_type", mimeType,
	)

	return result.SecureURL, nil
}

// sign computes the Cloudinary request signature: the SHA-1 hex digest
// of the sorted non-file parameters concatenated with the API secret
func (c *CloudinaryClient) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}
