package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dspavlov/docshelf/internal/common"
	"github.com/dspavlov/docshelf/internal/logging"
)

// remarkPageLimit caps the per-page remark count the client will request.
const remarkPageLimit = 100

// HTTPClient implements Client over the REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger

	// tokenFn supplies the current bearer token; empty means unauthenticated.
	tokenFn func() string
	// onUnauthenticated is the registered global logout callback, invoked on
	// every 401 before the error is returned. Deduplication of concurrent
	// teardowns is the session manager's concern, not this client's.
	onUnauthenticated func()
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying transport (tests, timeouts).
func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

// WithTokenSource registers the bearer-token supplier.
func WithTokenSource(fn func() string) Option {
	return func(c *HTTPClient) { c.tokenFn = fn }
}

// WithLogger attaches a structured logger.
func WithLogger(log logging.Logger) Option {
	return func(c *HTTPClient) { c.log = log }
}

// NewHTTPClient builds a client for the API rooted at baseURL
// (e.g. "http://localhost:4000/api/v1"; trailing slashes are stripped).
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		// No request timeout: a request resolves, fails at the transport
		// level, or is cancelled by the caller's context.
		http:    &http.Client{},
		tokenFn: func() string { return "" },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetUnauthenticatedHandler registers the global logout callback fired on 401.
func (c *HTTPClient) SetUnauthenticatedHandler(fn func()) {
	c.onUnauthenticated = fn
}

// request performs one HTTP call and returns the unwrapped JSON body.
// Cancellation passes through as the caller's context error; transport
// failures surface as ErrUnreachable; 401 fires the logout callback and
// returns ErrUnauthenticated; other non-2xx return an *APIError carrying the
// server's message.
func (c *HTTPClient) request(ctx context.Context, method, path string, body io.Reader, contentType string) (json.RawMessage, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.tokenFn(); token != "" && req.Header.Get(common.AuthorizationHeader) == "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if c.log != nil {
			c.log.Warn(ctx, "request unauthenticated", "method", method, "path", path)
		}
		if c.onUnauthenticated != nil {
			c.onUnauthenticated()
		}
		return nil, ErrUnauthenticated
	}

	payload, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		payload = nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: serverMessage(payload, resp.StatusCode)}
	}

	return unwrapEnvelope(payload), nil
}

// serverMessage extracts the body's message/error field, falling back to the
// HTTP status text.
func serverMessage(payload []byte, status int) string {
	if obj, ok := asObject(payload); ok {
		for _, key := range []string{"message", "error"} {
			if raw, found := obj[key]; found {
				var s string
				if err := json.Unmarshal(raw, &s); err == nil && s != "" {
					return s
				}
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "an unknown error occurred"
}

func (c *HTTPClient) requestJSON(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	return c.request(ctx, method, path, bytes.NewReader(body), "application/json")
}

// ListAttachments resolves one page of the attachment collection.
func (c *HTTPClient) ListAttachments(ctx context.Context, opts ListOptions) (PaginatedAttachments, error) {
	query := url.Values{}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.SortBy != "" {
		query.Set("sortBy", opts.SortBy)
	}
	if opts.SortOrder != "" {
		query.Set("sortOrder", opts.SortOrder)
	}
	if opts.PathID > 0 {
		query.Set("pathId", strconv.FormatInt(opts.PathID, 10))
	}
	if opts.Search != "" {
		query.Set("search", opts.Search)
	}
	if opts.Folder != "" {
		query.Set("folder", opts.Folder)
	}

	path := "/attachments"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	raw, err := c.request(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return PaginatedAttachments{}, err
	}
	return NormalizePaginatedAttachments(raw), nil
}

// GetAttachment fetches the detail view: the attachment plus activity logs.
func (c *HTTPClient) GetAttachment(ctx context.Context, id int64) (AttachmentDetail, error) {
	raw, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/attachments/%d", id), nil, "")
	if err != nil {
		return AttachmentDetail{}, err
	}
	var detail AttachmentDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		return AttachmentDetail{}, fmt.Errorf("decoding attachment detail: %w", err)
	}
	return detail, nil
}

// UploadAttachments multipart-encodes the batch and returns the created rows.
func (c *HTTPClient) UploadAttachments(ctx context.Context, opts UploadOptions) ([]AttachmentItem, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, f := range opts.Files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, fmt.Errorf("encoding upload: %w", err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}
	}
	if folder := strings.TrimSpace(opts.Folder); folder != "" {
		if err := mw.WriteField("folder", folder); err != nil {
			return nil, fmt.Errorf("encoding upload: %w", err)
		}
	}
	if name := strings.TrimSpace(opts.Name); name != "" {
		if err := mw.WriteField("name", name); err != nil {
			return nil, fmt.Errorf("encoding upload: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("encoding upload: %w", err)
	}

	raw, err := c.request(ctx, http.MethodPost, "/attachments", &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	return decodeAttachmentList(raw), nil
}

// decodeAttachmentList accepts either a bare array or a {data: [...]}
// envelope that survived unwrapping because it carried extra keys.
func decodeAttachmentList(raw json.RawMessage) []AttachmentItem {
	if asArray(raw) {
		var items []AttachmentItem
		if err := json.Unmarshal(raw, &items); err == nil {
			return items
		}
		return []AttachmentItem{}
	}
	if obj, ok := asObject(raw); ok {
		if data := obj["data"]; asArray(data) {
			var items []AttachmentItem
			if err := json.Unmarshal(data, &items); err == nil {
				return items
			}
		}
	}
	return []AttachmentItem{}
}

// UpdateAttachment PATCHes only the changed fields and returns the updated row.
func (c *HTTPClient) UpdateAttachment(ctx context.Context, id int64, patch UpdatePayload) (AttachmentItem, error) {
	raw, err := c.requestJSON(ctx, http.MethodPatch, fmt.Sprintf("/attachments/%d", id), patch)
	if err != nil {
		return AttachmentItem{}, err
	}
	var item AttachmentItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return AttachmentItem{}, fmt.Errorf("decoding updated attachment: %w", err)
	}
	return item, nil
}

// DeleteAttachment removes one file.
func (c *HTTPClient) DeleteAttachment(ctx context.Context, id int64) error {
	_, err := c.request(ctx, http.MethodDelete, fmt.Sprintf("/attachments/%d", id), nil, "")
	return err
}

// DeleteDirectory removes one folder; attachments inside move with it
// server-side.
func (c *HTTPClient) DeleteDirectory(ctx context.Context, folder string) error {
	_, err := c.request(ctx, http.MethodDelete, "/attachments/directory/"+url.PathEscape(folder), nil, "")
	return err
}

// CreateFolder creates a folder marker.
func (c *HTTPClient) CreateFolder(ctx context.Context, folder string) (AttachmentItem, error) {
	payload := map[string]string{"folder": strings.TrimSpace(folder)}
	raw, err := c.requestJSON(ctx, http.MethodPost, "/attachments/folders", payload)
	if err != nil {
		return AttachmentItem{}, err
	}
	var item AttachmentItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return AttachmentItem{}, fmt.Errorf("decoding created folder: %w", err)
	}
	return item, nil
}

// ListRemarks fetches one page of remarks for an attachment.
func (c *HTTPClient) ListRemarks(ctx context.Context, attachmentID int64, page, limit int) (PaginatedRemarks, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		if limit > remarkPageLimit {
			limit = remarkPageLimit
		}
		query.Set("limit", strconv.Itoa(limit))
	}

	path := fmt.Sprintf("/remarks/attachment/%d", attachmentID)
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	raw, err := c.request(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return PaginatedRemarks{}, err
	}
	return NormalizePaginatedRemarks(raw), nil
}

// CreateRemark leaves one remark on an attachment.
func (c *HTTPClient) CreateRemark(ctx context.Context, payload CreateRemarkPayload) error {
	_, err := c.requestJSON(ctx, http.MethodPost, "/remarks", payload)
	return err
}

// Login exchanges credentials for a normalized auth payload.
func (c *HTTPClient) Login(ctx context.Context, creds Credentials) (AuthPayload, error) {
	raw, err := c.requestJSON(ctx, http.MethodPost, "/auth/login", creds)
	if err != nil {
		return AuthPayload{}, err
	}
	return NormalizeAuthPayload(raw)
}

// Logout invalidates the server-side session.
func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.request(ctx, http.MethodPost, "/auth/logout", nil, "")
	return err
}

var _ Client = (*HTTPClient)(nil)
