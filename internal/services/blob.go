package services

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// CloudinaryResponse is the subset of the upload API response we use.
type CloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CloudinaryClient uploads local files to Cloudinary via its HTTP API.
// Timeouts are owned by the caller's context, not the client.
type CloudinaryClient struct {
	cloudName  string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
}

func NewCloudinaryClient() *CloudinaryClient {
	name := os.Getenv("CLOUD_NAME")
	key := os.Getenv("CLOUD_API_KEY")
	secret := os.Getenv("CLOUD_API_SECRET")
	if name == "" || key == "" || secret == "" {
		log.Println("⚠️ Cloudinary disabled: Missing CLOUD_NAME, CLOUD_API_KEY or CLOUD_API_SECRET.")
	}
	return &CloudinaryClient{
		cloudName:  name,
		apiKey:     key,
		apiSecret:  secret,
		httpClient: &http.Client{},
	}
}

func (c *CloudinaryClient) Upload(ctx context.Context, localPath, folder string) (string, error) {
	if c.cloudName == "" || c.apiKey == "" || c.apiSecret == "" {
		return "", fmt.Errorf("cloudinary is not configured")
	}

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open upload file: %w", err)
	}
	defer file.Close()

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(localPath))
	if err != nil {
		return "", fmt.Errorf("build request body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("read upload file: %w", err)
	}
	fields := map[string]string{
		"api_key":   c.apiKey,
		"timestamp": timestamp,
		"folder":    folder,
		"signature": c.sign(folder, timestamp),
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return "", fmt.Errorf("build request body: %w", err)
		}
	}
	writer.Close()

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	var parsed CloudinaryResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || parsed.SecureURL == "" {
		msg := parsed.Error.Message
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("cloudinary upload failed: %s", msg)
	}
	return parsed.SecureURL, nil
}

// sign produces the request signature: SHA-1 over the sorted params plus the
// API secret, per the Cloudinary signed-upload scheme.
func (c *CloudinaryClient) sign(folder, timestamp string) string {
	payload := fmt.Sprintf("folder=%s&timestamp=%s%s", folder, timestamp, c.apiSecret)
	return fmt.Sprintf("%x", sha1.Sum([]byte(payload)))
}
