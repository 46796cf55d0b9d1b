package receipt

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"tillpoint/internal/domain/documents/bill"
)

// GotenbergClient converts HTML documents to PDF via a Gotenberg service.
type GotenbergClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewGotenbergClient(baseURL string) *GotenbergClient {
	return &GotenbergClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Ping checks that the remote Gotenberg service is reachable.
func (c *GotenbergClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/health", c.baseURL), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("gotenberg returned status %d", resp.StatusCode)
	}
	return nil
}

// RenderHTML converts raw HTML into a PDF document.
func (c *GotenbergClient) RenderHTML(ctx context.Context, html []byte) ([]byte, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(html); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/forms/chromium/convert/html", c.baseURL), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("render failed with status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// PDFRenderer wraps an HTMLRenderer and converts its output to PDF.
// It satisfies the same renderer contract as HTMLRenderer, so the bill
// workflow does not care which one it is wired with.
type PDFRenderer struct {
	html   *HTMLRenderer
	client *GotenbergClient
}

func NewPDFRenderer(html *HTMLRenderer, client *GotenbergClient) *PDFRenderer {
	return &PDFRenderer{html: html, client: client}
}

func (r *PDFRenderer) Render(ctx context.Context, b *bill.Bill, renderedAt time.Time) ([]byte, error) {
	doc, err := r.html.Render(ctx, b, renderedAt)
	if err != nil {
		return nil, err
	}
	return r.client.RenderHTML(ctx, doc)
}
