// Package mediastore is a client for the hosted media upload API
// (ImageKit-compatible). It stores a binary blob under a unique name and
// returns a publicly fetchable URL.
package mediastore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
)

// Uploader is the interface the feed service depends on. A single attempt per
// call; retry policy is deliberately undefined.
type Uploader interface {
	Upload(ctx context.Context, fileName string, content []byte) (*UploadResult, error)
}

// UploadResult is the media store's answer to a successful upload.
type UploadResult struct {
	URL    string `json:"url"`
	Name   string `json:"name"`
	FileID string `json:"fileId"`
}

// Client talks to the hosted upload endpoint using the account's private key.
type Client struct {
	endpoint   string
	privateKey string
	httpClient *http.Client
}

// New returns a Client for the given upload endpoint.
func New(endpoint, privateKey string) *Client {
	return &Client{
		endpoint:   endpoint,
		privateKey: privateKey,
		httpClient: http.DefaultClient,
	}
}

// Upload sends the file as a multipart POST and asks the store to pick a
// unique object name. Any transport failure or non-2xx response is returned
// as an error; nothing is written locally.
func (c *Client) Upload(ctx context.Context, fileName string, content []byte) (*UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	if err := writer.WriteField("fileName", fileName); err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	if err := writer.WriteField("useUniqueFileName", strconv.FormatBool(true)); err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.SetBasicAuth(c.privateKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("media store upload: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("media store upload failed: status %d: %s", resp.StatusCode, string(msg))
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	if result.URL == "" || result.Name == "" {
		return nil, fmt.Errorf("media store upload: incomplete response (url=%q name=%q)", result.URL, result.Name)
	}

	return &result, nil
}
