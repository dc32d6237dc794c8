package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Renderer converts report HTML to PDF through a Gotenberg-compatible
// service. Layout belongs to the service; this client only ships the
// assembled document over.
type Renderer struct {
	baseURL    string
	httpClient *http.Client
}

// NewRenderer constructs a renderer client for the given base URL.
func NewRenderer(baseURL string) *Renderer {
	if baseURL == "" || baseURL == "local" {
		baseURL = "http://127.0.0.1:3000"
	}
	return &Renderer{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Ping checks whether the renderer service is reachable.
func (c *Renderer) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("renderer returned status %d", resp.StatusCode)
	}
	return nil
}

// RenderPDF converts raw HTML into a PDF document.
func (c *Renderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if _, err := io.Copy(part, bytes.NewBufferString(html)); err != nil {
		return nil, fmt.Errorf("write form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	url := c.baseURL + "/forms/chromium/convert/html"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("renderer call failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read renderer response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("renderer non-2xx: %s, body: %s", resp.Status, string(data))
	}
	return data, nil
}
