package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Options configure the evaluator API client.
type Options struct {
	BaseURL string

	// MaxAttempts bounds transport-level retries; BaseDelay is the first
	// backoff step (doubled per attempt).
	MaxAttempts int
	BaseDelay   time.Duration

	// SubmitTimeout is the hard deadline for the submission call. The
	// backend can take minutes on a cold model, so it defaults high.
	SubmitTimeout time.Duration

	// ReadTimeout is the deadline for every other call (list, get,
	// download, domains, settings).
	ReadTimeout time.Duration

	HTTPClient *http.Client
}

// Client talks to the grant evaluator REST API.
type Client struct {
	opts Options
	http *http.Client
}

func New(opts Options) *Client {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = 500 * time.Millisecond
	}
	if opts.SubmitTimeout <= 0 {
		opts.SubmitTimeout = 5 * time.Minute
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = 30 * time.Second
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &Client{opts: opts, http: httpClient}
}

// SubmitRequest is one proposal submission. SessionID is the
// client-generated correlation id addressing the progress channel.
type SubmitRequest struct {
	FileName        string
	Content         []byte
	Domain          string
	CheckPlagiarism bool
	SessionID       string
}

// Submit uploads a proposal and blocks until the backend returns the
// finished evaluation record. The call runs under the configured hard
// deadline; on expiry the error satisfies IsTimeout.
func (c *Client) Submit(ctx context.Context, req SubmitRequest) (*Evaluation, error) {
	if req.FileName == "" {
		return nil, errors.New("missing file name")
	}
	if len(req.Content) == 0 {
		return nil, errors.New("empty document")
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.SubmitTimeout)
	defer cancel()

	build := func(ctx context.Context) (*http.Request, error) {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		fw, err := mw.CreateFormFile("file", req.FileName)
		if err != nil {
			return nil, errors.Wrap(err, "create form file")
		}
		if _, err := fw.Write(req.Content); err != nil {
			return nil, errors.Wrap(err, "write form file")
		}
		if req.Domain != "" {
			if err := mw.WriteField("domain", req.Domain); err != nil {
				return nil, errors.Wrap(err, "write domain field")
			}
		}
		if err := mw.WriteField("check_plagiarism", strconv.FormatBool(req.CheckPlagiarism)); err != nil {
			return nil, errors.Wrap(err, "write plagiarism field")
		}
		if req.SessionID != "" {
			if err := mw.WriteField("session_id", req.SessionID); err != nil {
				return nil, errors.Wrap(err, "write session field")
			}
		}
		if err := mw.Close(); err != nil {
			return nil, errors.Wrap(err, "close multipart writer")
		}

		hr, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/api/evaluations", bytes.NewReader(body.Bytes()))
		if err != nil {
			return nil, err
		}
		hr.Header.Set("Content-Type", mw.FormDataContentType())
		return hr, nil
	}

	var out Evaluation
	if err := c.doJSON(ctx, build, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListEvaluations returns stored evaluations, newest first.
func (c *Client) ListEvaluations(ctx context.Context) ([]Evaluation, error) {
	var out []Evaluation
	if err := c.getJSON(ctx, "/api/evaluations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEvaluation fetches one evaluation by id.
func (c *Client) GetEvaluation(ctx context.Context, id string) (*Evaluation, error) {
	if id == "" {
		return nil, errors.New("missing evaluation id")
	}
	var out Evaluation
	if err := c.getJSON(ctx, "/api/evaluations/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadReport streams the PDF report for an evaluation into w.
func (c *Client) DownloadReport(ctx context.Context, id string, w io.Writer) error {
	if id == "" {
		return errors.New("missing evaluation id")
	}
	ctx, cancel := c.readContext(ctx)
	defer cancel()
	resp, err := c.doWithRetry(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+"/api/evaluations/"+id+"/download", nil)
	})
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return errors.Wrap(err, "download report")
	}
	return nil
}

// Domains returns the selectable evaluation domains.
func (c *Client) Domains(ctx context.Context) ([]string, error) {
	var out struct {
		Domains []string `json:"domains"`
	}
	if err := c.getJSON(ctx, "/api/domains", &out); err != nil {
		return nil, err
	}
	return out.Domains, nil
}

// GetSettings fetches the server-side evaluation settings.
func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	var out Settings
	if err := c.getJSON(ctx, "/api/settings", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSettings replaces the server-side evaluation settings.
func (c *Client) UpdateSettings(ctx context.Context, s Settings) (*Settings, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "marshal settings")
	}
	ctx, cancel := c.readContext(ctx)
	defer cancel()
	build := func(ctx context.Context) (*http.Request, error) {
		hr, err := http.NewRequestWithContext(ctx, http.MethodPut, c.opts.BaseURL+"/api/settings", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		hr.Header.Set("Content-Type", "application/json")
		return hr, nil
	}
	var out Settings
	if err := c.doJSON(ctx, build, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	ctx, cancel := c.readContext(ctx)
	defer cancel()
	return c.doJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+path, nil)
	}, out)
}

// readContext bounds non-submission calls with the read deadline. A stalled
// backend surfaces as a timeout-classified error instead of hanging.
func (c *Client) readContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.opts.ReadTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.opts.ReadTimeout)
}

func (c *Client) doJSON(ctx context.Context, build requestFactory, out any) error {
	resp, err := c.doWithRetry(ctx, build)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

// apiError extracts the FastAPI-style {"detail": "..."} body if present.
func apiError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err == nil && len(body) > 0 {
		var payload struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Detail != "" {
			apiErr.Detail = payload.Detail
		} else {
			apiErr.Detail = strings.TrimSpace(string(body))
		}
	}
	return apiErr
}
