package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// DocumentRenderer renders an invoice document and returns a URL to
// the stored PDF. Called only after the checkout transaction commits;
// failures are logged and retried opportunistically, never rolled back.
type DocumentRenderer interface {
	RenderInvoice(ctx context.Context, invoiceID uuid.UUID) (string, error)
}

// HTTPDocumentRenderer calls an external render-and-store service.
type HTTPDocumentRenderer struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPDocumentRenderer creates a new HTTPDocumentRenderer.
func NewHTTPDocumentRenderer(baseURL string) *HTTPDocumentRenderer {
	return &HTTPDocumentRenderer{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type renderRequest struct {
	InvoiceID string `json:"invoice_id"`
}

type renderResponse struct {
	PDFURL string `json:"pdf_url"`
}

// RenderInvoice requests the document and returns its URL.
func (r *HTTPDocumentRenderer) RenderInvoice(ctx context.Context, invoiceID uuid.UUID) (string, error) {
	body, err := json.Marshal(renderRequest{InvoiceID: invoiceID.String()})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/invoices/render", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("render request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("render request: status %d", resp.StatusCode)
	}

	var out renderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("render decode: %w", err)
	}
	return out.PDFURL, nil
}
