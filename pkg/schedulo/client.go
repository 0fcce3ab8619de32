package schedulo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	models "github.com/chrisdamba/schedulo/internal"
)

type Client struct {
	httpClient HTTPClient
	baseURL    string
	log        *slog.Logger
}

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

type Option func(*Client)

var (
	ErrTransport   = errors.New("cannot reach booking store")
	ErrApplication = errors.New("booking store rejected request")
)

// TransportError means no response was received.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrTransport, e.Err)
}

func (e *TransportError) Unwrap() []error { return []error{ErrTransport, e.Err} }

// ApplicationError means a response arrived but did not report success.
type ApplicationError struct {
	Op         string
	StatusCode int
	Msg        string
}

func (e *ApplicationError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %v (status %d)", e.Op, ErrApplication, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v (status %d): %s", e.Op, ErrApplication, e.StatusCode, e.Msg)
}

func (e *ApplicationError) Unwrap() error { return ErrApplication }

func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

func NewClient(opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    "http://localhost:5000",
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// List returns the whole collection in store order.
func (c *Client) List(ctx context.Context) ([]models.Booking, error) {
	const op = "list bookings"
	body, status, err := c.do(ctx, op, http.MethodGet, "/bookings", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &ApplicationError{Op: op, StatusCode: status, Msg: envelopeMessage(body)}
	}

	var bookings []models.Booking
	if err := json.Unmarshal(body, &bookings); err != nil {
		return nil, &ApplicationError{Op: op, StatusCode: status, Msg: "unexpected payload: " + err.Error()}
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

// Create submits a new booking. The returned booking carries the store id when the
// store echoes the created record.
func (c *Client) Create(ctx context.Context, fields models.Fields) (*models.Booking, error) {
	const op = "create booking"
	res, err := c.mutate(ctx, op, http.MethodPost, "/book", fields)
	if err != nil {
		return nil, err
	}
	if res.Booking != nil {
		return res.Booking, nil
	}
	return bookingFromFields(fields), nil
}

func (c *Client) Update(ctx context.Context, id string, fields models.Fields) error {
	if id == "" {
		return fmt.Errorf("update booking: %w", models.ErrInvalidID)
	}
	_, err := c.mutate(ctx, "update booking", http.MethodPut, "/bookings/"+url.PathEscape(id), fields)
	return err
}

func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("delete booking: %w", models.ErrInvalidID)
	}
	_, err := c.mutate(ctx, "delete booking", http.MethodDelete, "/bookings/"+url.PathEscape(id), nil)
	return err
}

func (c *Client) mutate(ctx context.Context, op, method, path string, payload interface{}) (*models.Result, error) {
	body, status, err := c.do(ctx, op, method, path, payload)
	if err != nil {
		return nil, err
	}

	var res models.Result
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, &ApplicationError{Op: op, StatusCode: status, Msg: "unexpected payload: " + err.Error()}
	}
	if !res.Success || status/100 != 2 {
		return nil, &ApplicationError{Op: op, StatusCode: status, Msg: res.Message}
	}
	return &res, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, payload interface{}) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonBytes, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: encoding payload: %w", op, err)
		}
		reqBody = bytes.NewReader(jsonBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: building request: %w", op, err)
	}
	req.Header.Add("Accept", "application/json")
	if payload != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("booking store unreachable", "op", op, "method", method, "path", path, "err", err)
		return nil, 0, &TransportError{Op: op, Err: err}
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn("reading booking store response", "op", op, "err", err)
		return nil, 0, &TransportError{Op: op, Err: err}
	}

	c.log.Debug("booking store response", "op", op, "method", method, "path", path, "status", resp.StatusCode)
	return body, resp.StatusCode, nil
}

func envelopeMessage(body []byte) string {
	var res models.Result
	if err := json.Unmarshal(body, &res); err != nil {
		return ""
	}
	return res.Message
}

func bookingFromFields(f models.Fields) *models.Booking {
	b := &models.Booking{Status: models.StatusPending}
	deref := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	deref(&b.Name, f.Name)
	deref(&b.Phone, f.Phone)
	deref(&b.Service, f.Service)
	deref(&b.Date, f.Date)
	deref(&b.Time, f.Time)
	deref(&b.Notes, f.Notes)
	if f.Status != nil {
		b.Status = *f.Status
	}
	return b
}
