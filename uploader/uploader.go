package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/naniedobe1/PoleBrothers/errs"
)

// jpegContentType is sent both when requesting the signed URL and on the
// PUT itself. Presigned URLs bind the signature to headers, so the two must
// never diverge.
const jpegContentType = "image/jpeg"

// Client uploads a locally saved capture to object storage through a
// presigned URL obtained from the upload URL issuer.
type Client struct {
	WorkerURL string
	HTTP      *http.Client
}

func New(workerURL string) *Client {
	return &Client{WorkerURL: workerURL, HTTP: http.DefaultClient}
}

type presignRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

type presignResponse struct {
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
	Filename  string `json:"filename"`
}

// Upload sends the file at localPath to object storage under filename and
// returns the public URL reported by the issuer. The whole file is held in
// memory; captures are single photos, so streaming is deliberately skipped.
func (c *Client) Upload(ctx context.Context, localPath, filename string) (string, error) {
	// Step 1: request a presigned URL from the worker.
	target, err := c.requestUploadURL(ctx, filename)
	if err != nil {
		return "", err
	}

	// Step 2: the capture path saves locally before uploading; a failed
	// move must not silently turn into an empty upload.
	if _, err := os.Stat(localPath); err != nil {
		return "", errs.NotFound("file not found at path: %s", localPath)
	}

	// Step 3: read the full contents into memory.
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", errs.LocalIO("read photo", err)
	}

	// Step 4: PUT the exact bytes with the content type that was signed.
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target.UploadURL, bytes.NewReader(data))
	if err != nil {
		return "", errs.Network("build upload request: %v", err)
	}
	req.Header.Set("Content-Type", jpegContentType)
	req.ContentLength = int64(len(data))

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", errs.Network("upload: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", errs.Network("upload failed: %d %s", resp.StatusCode, string(body))
	}

	log.Printf("Uploaded %s (%d bytes)\n", target.Filename, len(data))

	// Step 5: trust the issuer's public URL; never re-derive it from the
	// PUT response.
	return target.PublicURL, nil
}

func (c *Client) requestUploadURL(ctx context.Context, filename string) (presignResponse, error) {
	payload, err := json.Marshal(presignRequest{Filename: filename, ContentType: jpegContentType})
	if err != nil {
		return presignResponse{}, errs.Preparation("encode request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.WorkerURL, bytes.NewReader(payload))
	if err != nil {
		return presignResponse{}, errs.Preparation("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return presignResponse{}, errs.Preparation("request presigned url: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return presignResponse{}, errs.Preparation("failed to get presigned URL: %s", string(body))
	}

	var target presignResponse
	if err := json.NewDecoder(resp.Body).Decode(&target); err != nil {
		return presignResponse{}, errs.Preparation("decode response: %v", err)
	}
	return target, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// GenerateFilename produces a timestamp-salted capture filename.
func GenerateFilename() string {
	return fmt.Sprintf("pole_%d_%d.jpg", time.Now().UnixMilli(), rand.Intn(10000))
}
