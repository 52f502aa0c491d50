package httpresp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pet-walks/internal/platform/apperr"
	"pet-walks/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.Validation("op", "bad"), http.StatusBadRequest},
		{apperr.Capacity("op", "full"), http.StatusConflict},
		{apperr.State("op", "nope"), http.StatusConflict},
		{apperr.NotFound("op", "missing"), http.StatusNotFound},
		{apperr.Protocol("op", "missing field"), http.StatusBadGateway},
		{apperr.Network("op", 0, errors.New("dial")), http.StatusBadGateway},
		{apperr.Network("op", 503, errors.New("down")), http.StatusBadGateway},
		{apperr.Network("op", 403, errors.New("forbidden")), http.StatusForbidden},
		{fmt.Errorf("ctx: %w", apperr.Validation("op", "bad")), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, StatusFor(c.err), c.err.Error())
	}
}

func TestError_HidesUntypedErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, logger.Nop(), "test", errors.New("sql: secret detail"), nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal error", body.Error)
	assert.Empty(t, body.Kind)
}

func TestError_WritesKind(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, nil, "test", apperr.Capacity("walks.accept", "limit reached"), nil)

	require.Equal(t, http.StatusConflict, rec.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "capacity", body.Kind)
	assert.Contains(t, body.Error, "limit reached")
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, DecodeJSON(r, "op", &dst))
	assert.Equal(t, "x", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	err := DecodeJSON(r, "op", &dst)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	err = DecodeJSON(r, "op", &dst)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
