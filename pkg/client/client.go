package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is the invoice dashboard API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client. Redirects are reported, never followed.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// ListInvoices fetches one page of invoices matching query.
func (c *Client) ListInvoices(ctx context.Context, query string, page int) (*InvoicePage, error) {
	params := url.Values{}
	if query != "" {
		params.Set("query", query)
	}
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}

	path := "/dashboard/invoices"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var out InvoicePage
	if _, err := c.doRequest(ctx, http.MethodGet, path, nil, "", &out); err != nil {
		return nil, fmt.Errorf("client.ListInvoices: %w", err)
	}
	return &out, nil
}

// GetEditForm fetches an invoice together with the customer options.
func (c *Client) GetEditForm(ctx context.Context, id string) (*EditForm, error) {
	var out EditForm
	if _, err := c.doRequest(ctx, http.MethodGet, "/dashboard/invoices/"+url.PathEscape(id)+"/edit", nil, "", &out); err != nil {
		return nil, fmt.Errorf("client.GetEditForm: %w", err)
	}
	return &out, nil
}

func (c *Client) Summary(ctx context.Context) (*Summary, error) {
	var out Summary
	if _, err := c.doRequest(ctx, http.MethodGet, "/dashboard", nil, "", &out); err != nil {
		return nil, fmt.Errorf("client.Summary: %w", err)
	}
	return &out, nil
}

func (c *Client) Customers(ctx context.Context) ([]Customer, error) {
	var out struct {
		Data []Customer `json:"data"`
	}
	if _, err := c.doRequest(ctx, http.MethodGet, "/dashboard/customers", nil, "", &out); err != nil {
		return nil, fmt.Errorf("client.Customers: %w", err)
	}
	return out.Data, nil
}

// CreateInvoice submits the create form. A *ValidationError is returned for rejected input.
func (c *Client) CreateInvoice(ctx context.Context, in InvoiceInput) (*MutationResult, error) {
	res, err := c.submit(ctx, http.MethodPost, "/dashboard/invoices", in)
	if err != nil {
		return nil, fmt.Errorf("client.CreateInvoice: %w", err)
	}
	return res, nil
}

func (c *Client) UpdateInvoice(ctx context.Context, id string, in InvoiceInput) (*MutationResult, error) {
	res, err := c.submit(ctx, http.MethodPut, "/dashboard/invoices/"+url.PathEscape(id), in)
	if err != nil {
		return nil, fmt.Errorf("client.UpdateInvoice: %w", err)
	}
	return res, nil
}

func (c *Client) DeleteInvoice(ctx context.Context, id string) (*MutationResult, error) {
	var out struct {
		Message string `json:"message"`
	}
	if _, err := c.doRequest(ctx, http.MethodDelete, "/dashboard/invoices/"+url.PathEscape(id), nil, "", &out); err != nil {
		return nil, fmt.Errorf("client.DeleteInvoice: %w", err)
	}
	return &MutationResult{Message: out.Message}, nil
}

// ImportInvoices uploads a CSV file with customer_id, amount and status columns.
func (c *Client) ImportInvoices(ctx context.Context, filename string, r io.Reader) (*ImportReport, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("client.ImportInvoices: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("client.ImportInvoices: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("client.ImportInvoices: %w", err)
	}

	var out ImportReport
	if _, err := c.doRequest(ctx, http.MethodPost, "/dashboard/invoices/import", &buf, w.FormDataContentType(), &out); err != nil {
		return nil, fmt.Errorf("client.ImportInvoices: %w", err)
	}
	return &out, nil
}

func (c *Client) submit(ctx context.Context, method, path string, in InvoiceInput) (*MutationResult, error) {
	form := url.Values{
		"customerId": {in.CustomerID},
		"amount":     {in.Amount},
		"status":     {in.Status},
	}
	resp, err := c.doRequest(ctx, method, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", nil)
	if err != nil {
		return nil, err
	}
	return &MutationResult{RedirectTo: resp.Header.Get("Location")}, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader, contentType string, out any) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		return nil, decodeError(resp)
	}

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp, nil
}

func decodeError(resp *http.Response) error {
	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
	if readErr != nil {
		return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
	}

	var apiErr struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
		Error   struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(respBody, &apiErr) != nil {
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	switch {
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return &ValidationError{Message: apiErr.Message, Fields: apiErr.Errors}
	case apiErr.Message != "":
		return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
	case apiErr.Error.Message != "":
		return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error.Message}
	default:
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}
}
