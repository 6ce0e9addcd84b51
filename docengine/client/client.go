package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"

	"healthdocs-backend/docengine/model"
	"healthdocs-backend/docengine/workflow"
)

// Session carries the credentials for one signed-in patient. It is passed in
// explicitly; the client never reads ambient state.
type Session struct {
	Token string
}

// Client talks to the document service over HTTP and implements
// workflow.DocumentService. The base URL includes the API prefix, e.g.
// http://localhost:8080/api/v1.
type Client struct {
	http *resty.Client
}

// New builds a client for the given base URL and session.
func New(baseURL string, session Session) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Accept", "application/json")
	if session.Token != "" {
		rc.SetAuthToken(session.Token)
	}
	return &Client{http: rc}
}

type wireCreateRequest struct {
	Title          string  `json:"title"`
	ServiceDate    string  `json:"service_date"`
	Provider       string  `json:"provider"`
	DocType        string  `json:"doc_type"`
	Medication     *string `json:"medication"`
	FileID         string  `json:"file_id"`
	IdempotencyKey string  `json:"-"`
}

type wireUpdateRequest struct {
	Title       string  `json:"title"`
	ServiceDate string  `json:"service_date"`
	Provider    string  `json:"provider"`
	DocType     string  `json:"doc_type"`
	Medication  *string `json:"medication"`
}

type uploadResponse struct {
	ID string `json:"id"`
}

// FetchDocuments loads all documents for the session.
func (c *Client) FetchDocuments(ctx context.Context) ([]model.DocumentRecord, error) {
	var wire []model.WireDocument
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&wire).
		Get("/documents")
	if err != nil {
		return nil, fmt.Errorf("fetch documents: %w", err)
	}
	if resp.IsError() {
		return nil, apiError("fetch documents", resp)
	}
	records := make([]model.DocumentRecord, 0, len(wire))
	for _, w := range wire {
		records = append(records, model.FromWire(w))
	}
	return records, nil
}

// CreateDocument creates a document and returns the authoritative record.
// The idempotency key travels as a header so retried submits do not
// duplicate.
func (c *Client) CreateDocument(ctx context.Context, payload workflow.CreatePayload) (model.DocumentRecord, error) {
	var wire model.WireDocument
	req := c.http.R().
		SetContext(ctx).
		SetBody(wireCreateRequest{
			Title:       payload.Title,
			ServiceDate: payload.ServiceDate,
			Provider:    payload.Provider,
			DocType:     string(payload.DocType),
			Medication:  optional(payload.Medication),
			FileID:      payload.FileID,
		}).
		SetResult(&wire)
	if payload.IdempotencyKey != "" {
		req.SetHeader("Idempotency-Key", payload.IdempotencyKey)
	}
	resp, err := req.Post("/documents")
	if err != nil {
		return model.DocumentRecord{}, fmt.Errorf("create document: %w", err)
	}
	if resp.IsError() {
		return model.DocumentRecord{}, apiError("create document", resp)
	}
	return model.FromWire(wire), nil
}

// UpdateDocument sends a full update and returns the authoritative record.
func (c *Client) UpdateDocument(ctx context.Context, id string, payload workflow.UpdatePayload) (model.DocumentRecord, error) {
	var wire model.WireDocument
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(wireUpdateRequest{
			Title:       payload.Title,
			ServiceDate: payload.ServiceDate,
			Provider:    payload.Provider,
			DocType:     string(payload.DocType),
			Medication:  optional(payload.Medication),
		}).
		SetResult(&wire).
		Post(fmt.Sprintf("/documents/%s/update", id))
	if err != nil {
		return model.DocumentRecord{}, fmt.Errorf("update document: %w", err)
	}
	if resp.IsError() {
		return model.DocumentRecord{}, apiError("update document", resp)
	}
	return model.FromWire(wire), nil
}

// DeleteDocument deletes a document; the service discards its file as well.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Post(fmt.Sprintf("/documents/%s/delete", id))
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if resp.IsError() {
		return apiError("delete document", resp)
	}
	return nil
}

// UploadFile uploads an attachment and returns its file ID.
func (c *Client) UploadFile(ctx context.Context, fileName string, r io.Reader) (string, error) {
	var out uploadResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("upload", fileName, r).
		SetResult(&out).
		Post("/documents/files")
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}
	if resp.IsError() {
		return "", apiError("upload file", resp)
	}
	return out.ID, nil
}

// FetchFileBytes downloads the attachment of a document.
func (c *Client) FetchFileBytes(ctx context.Context, id string) ([]byte, string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/documents/%s/file", id))
	if err != nil {
		return nil, "", fmt.Errorf("fetch file: %w", err)
	}
	if resp.IsError() {
		return nil, "", apiError("fetch file", resp)
	}
	return resp.Body(), resp.Header().Get("Content-Type"), nil
}

func apiError(op string, resp *resty.Response) error {
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error.Message != "" {
		return fmt.Errorf("%s: %s: %s", op, body.Error.Code, body.Error.Message)
	}
	return fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode())
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var _ workflow.DocumentService = (*Client)(nil)
