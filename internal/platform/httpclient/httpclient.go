package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-walks/internal/platform/apperr"
	"pet-walks/internal/platform/metrics"
)

const maxBodyBytes = 1 << 20 // 1MB

// Client es el gateway hacia el backend remoto: JSON sobre HTTP, sin reintentos.
// Un timeout <= 0 deja el cliente sin timeout propio; manda el context del caller.
type Client struct {
	HTTP    *http.Client
	BaseURL string

	// Headers fijos (p.ej. API key) que se agregan a todos los requests.
	Headers map[string]string
}

func New(timeout time.Duration) *Client {
	hc := &http.Client{}
	if timeout > 0 {
		hc.Timeout = timeout
	}
	return &Client{HTTP: hc, Headers: map[string]string{}}
}

func NewWithBaseURL(baseURL string, timeout time.Duration) (*Client, error) {
	c := New(timeout)
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("httpclient: base url required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c.BaseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return c, nil
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// Request describe una llamada. Endpoint es el template de la ruta
// ("/tickets/{id}") y se usa solo como label de métricas.
type Request struct {
	Method   string
	Path     string
	Endpoint string
	Headers  map[string]string
	Body     any
}

// Do ejecuta el request y devuelve el body crudo de una respuesta 2xx.
//
// Errores:
//   - transporte o status no-2xx -> apperr KindNetwork (con HTTPError como causa)
//   - 404 -> KindNotFound, 409 -> KindState
func (c *Client) Do(ctx context.Context, req Request) ([]byte, error) {
	op := strings.ToLower(req.Method) + " " + endpointLabel(req)
	if c == nil || c.HTTP == nil {
		return nil, apperr.Network(op, 0, errors.New("httpclient: nil client"))
	}

	fullURL, err := c.resolveURL(req.Path)
	if err != nil {
		return nil, apperr.Network(op, 0, err)
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, apperr.Validation(op, "marshal json: %v", err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, apperr.Network(op, 0, fmt.Errorf("httpclient: new request: %w", err))
	}

	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.Headers {
		if strings.TrimSpace(k) == "" || v == "" {
			continue
		}
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		if strings.TrimSpace(k) == "" || v == "" {
			continue
		}
		httpReq.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.HTTP.Do(httpReq)
	metrics.BackendRequestDuration.WithLabelValues(req.Method, endpointLabel(req)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(req.Method, endpointLabel(req), "transport_error").Inc()
		return nil, apperr.Network(op, 0, fmt.Errorf("httpclient: do request: %w", err))
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.BackendRequestsTotal.WithLabelValues(req.Method, endpointLabel(req), fmt.Sprintf("%dxx", resp.StatusCode/100)).Inc()
		herr := &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
		switch resp.StatusCode {
		case http.StatusNotFound:
			return nil, apperr.Wrap(apperr.KindNotFound, op, resp.StatusCode, herr)
		case http.StatusConflict:
			return nil, apperr.Wrap(apperr.KindState, op, resp.StatusCode, herr)
		default:
			return nil, apperr.Network(op, resp.StatusCode, herr)
		}
	}

	metrics.BackendRequestsTotal.WithLabelValues(req.Method, endpointLabel(req), "ok").Inc()
	return raw, nil
}

// DoJSON ejecuta el request y decodifica la respuesta en out (si no es nil).
func (c *Client) DoJSON(ctx context.Context, req Request, out any) error {
	raw, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperr.Protocol(strings.ToLower(req.Method)+" "+endpointLabel(req), "invalid json: %v", err)
	}
	return nil
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return "", errors.New("httpclient: empty url")
	}

	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL, nil
	}

	if strings.TrimSpace(c.BaseURL) == "" {
		return "", errors.New("httpclient: relative path requires BaseURL")
	}

	if !strings.HasPrefix(pathOrURL, "/") {
		pathOrURL = "/" + pathOrURL
	}
	return c.BaseURL + pathOrURL, nil
}

func endpointLabel(req Request) string {
	if req.Endpoint != "" {
		return req.Endpoint
	}
	// sin template: cortamos el query string para no explotar la cardinalidad
	p := req.Path
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	return p
}
