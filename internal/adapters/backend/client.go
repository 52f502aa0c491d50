// Package backend implementa los repositorios de dominio contra el backend
// remoto. Cada respuesta llega envuelta en {"data": ...}; si falta el sobre o
// algún campo que la operación necesita, la llamada falla con un error de
// protocolo en vez de seguir con datos a medias.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"pet-walks/internal/platform/apperr"
	"pet-walks/internal/platform/httpclient"
	"pet-walks/internal/ports/auth"
)

type Client struct {
	http *httpclient.Client
}

func NewClient(hc *httpclient.Client) *Client {
	return &Client{http: hc}
}

// call describe una llamada al backend. Required son las claves que tienen
// que estar presentes en data (o en cada elemento, si data es una lista).
type call struct {
	Method   string
	Path     string
	Endpoint string
	Body     any
	Headers  map[string]string
	Required []string
	List     bool
}

func (c *Client) do(ctx context.Context, in call, out any) error {
	headers := identityHeaders(ctx)
	for k, v := range in.Headers {
		headers[k] = v
	}

	raw, err := c.http.Do(ctx, httpclient.Request{
		Method:   in.Method,
		Path:     in.Path,
		Endpoint: in.Endpoint,
		Headers:  headers,
		Body:     in.Body,
	})
	if err != nil {
		return err
	}

	op := strings.ToLower(in.Method) + " " + in.Endpoint
	if in.List {
		return decodeList(op, raw, in.Required, out)
	}
	return decodeData(op, raw, in.Required, out)
}

// identityHeaders reenvía la identidad del request entrante.
func identityHeaders(ctx context.Context) map[string]string {
	h := map[string]string{}
	c, ok := auth.ClaimsFrom(ctx)
	if !ok {
		return h
	}
	if c.Token != "" {
		h["Authorization"] = "Bearer " + c.Token
	}
	if c.UserID != "" {
		h["X-User-ID"] = c.UserID
	}
	return h
}

func envelope(op string, raw []byte) (json.RawMessage, error) {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, apperr.Protocol(op, "invalid json: %v", err)
	}
	if env.Data == nil {
		return nil, apperr.Protocol(op, "response without data envelope")
	}
	return env.Data, nil
}

func isNull(data json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// decodeData valida y decodifica un objeto. Un campo presente con valor null
// cuenta como presente.
func decodeData(op string, raw []byte, required []string, out any) error {
	data, err := envelope(op, raw)
	if err != nil {
		return err
	}
	if isNull(data) {
		if len(required) > 0 {
			return apperr.Protocol(op, "response data is null, expected %s", strings.Join(required, ", "))
		}
		return nil
	}
	if err := checkFields(data, required); err != nil {
		return apperr.Protocol(op, "%v", err)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperr.Protocol(op, "decode data: %v", err)
	}
	return nil
}

// decodeList valida cada elemento de una lista. data null = lista vacía.
func decodeList(op string, raw []byte, required []string, out any) error {
	data, err := envelope(op, raw)
	if err != nil {
		return err
	}
	if isNull(data) {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return apperr.Protocol(op, "data is not a list: %v", err)
	}
	for i, item := range items {
		if err := checkFields(item, required); err != nil {
			return apperr.Protocol(op, "item %d: %v", i, err)
		}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperr.Protocol(op, "decode data: %v", err)
	}
	return nil
}

func checkFields(data json.RawMessage, required []string) error {
	if len(required) == 0 {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return errors.New("data is not an object")
	}
	var missing []string
	for _, k := range required {
		if _, ok := fields[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("response missing %s", strings.Join(missing, ", "))
	}
	return nil
}

func seg(s string) string {
	return url.PathEscape(strings.TrimSpace(s))
}
