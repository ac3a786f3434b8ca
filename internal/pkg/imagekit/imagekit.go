package imagekit

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	uploadURL = "https://upload.imagekit.io/api/v1/files/upload"
	filesURL  = "https://api.imagekit.io/v1/files"

	// MaxFileSize is the largest upload accepted by the media API plan.
	MaxFileSize = 5 * 1024 * 1024
)

var (
	ErrNotConfigured = errors.New("imagekit is not configured")
	ErrFileTooLarge  = errors.New("file size must be less than 5MB")
)

// Client talks to the ImageKit media API using private-key basic auth.
type Client struct {
	privateKey string
	folder     string
	http       *http.Client
}

type UploadResult struct {
	URL    string `json:"url"`
	FileID string `json:"fileId"`
}

func New(privateKey, folder string) *Client {
	return &Client{
		privateKey: privateKey,
		folder:     folder,
		http:       &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Enabled() bool { return c != nil && c.privateKey != "" }

// Upload sends the image bytes as multipart form data and returns the public
// URL plus the opaque file id needed for later deletion. The file name gets a
// unique prefix so repeated uploads never collide.
func (c *Client) Upload(ctx context.Context, data []byte, fileName string) (*UploadResult, error) {
	if !c.Enabled() {
		return nil, ErrNotConfigured
	}
	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	uniqueName := fmt.Sprintf("%s-%s", uuid.NewString()[:8], fileName)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", uniqueName)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	_ = w.WriteField("fileName", uniqueName)
	_ = w.WriteField("folder", c.folder)
	_ = w.WriteField("useUniqueFileName", "false")
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", c.authHeader())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, msg)
	}

	var out UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a previously uploaded file by its id.
func (c *Client) Delete(ctx context.Context, fileID string) error {
	if !c.Enabled() {
		return ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, filesURL+"/"+fileID, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.authHeader())

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("deletion failed with status %d: %s", resp.StatusCode, msg)
	}
	return nil
}

func (c *Client) authHeader() string {
	creds := base64.StdEncoding.EncodeToString([]byte(c.privateKey + ":"))
	return "Basic " + creds
}
