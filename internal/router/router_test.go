package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-walks/internal/config"
	"pet-walks/internal/devbackend"
	"pet-walks/internal/platform/httpclient"
	"pet-walks/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type identity struct {
	userID string
	role   string
}

var (
	owner  = identity{"owner-1", "owner"}
	walker = identity{"walker-1", "walker"}
	admin  = identity{"admin-1", "admin"}
)

// newStack levanta el dev backend y el BFF apuntando a él.
func newStack(t *testing.T) string {
	t.Helper()

	be := httptest.NewServer(devbackend.New(devbackend.NewMemoryStores(), nil).Routes())
	t.Cleanup(be.Close)

	hc, err := httpclient.NewWithBaseURL(be.URL, 5*time.Second)
	require.NoError(t, err)

	cfg := config.Config{Timezone: "America/Argentina/Buenos_Aires"}
	cfg.ImageHost.CloudName = "pets"

	ts := httptest.NewServer(router.NewRouter(router.Options{Config: cfg, Backend: hc}))
	t.Cleanup(ts.Close)
	return ts.URL
}

func doReq(t *testing.T, baseURL, method, path string, who identity, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if who.userID != "" {
		req.Header.Set("X-Debug-User-ID", who.userID)
		req.Header.Set("X-User-Role", who.role)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestHTTP_HealthMetricsAndDocs(t *testing.T) {
	url := newStack(t)

	st, body := doReq(t, url, "GET", "/health", identity{}, nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, "ok", string(body))

	st, _ = doReq(t, url, "GET", "/metrics", identity{}, nil)
	assert.Equal(t, http.StatusOK, st)

	st, body = doReq(t, url, "GET", "/swagger/doc.json", identity{}, nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Contains(t, string(body), "/api/tickets")

	st, body = doReq(t, url, "GET", "/api/config/image-host", identity{}, nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, "pets", decode[map[string]any](t, body)["cloudName"])
}

func TestHTTP_EndToEnd_TicketSingleResponse(t *testing.T) {
	url := newStack(t)

	// 1) Dueño abre ticket
	st, body := doReq(t, url, "POST", "/api/tickets", owner, map[string]any{
		"subject":  "Mi perro no llegó",
		"message":  "El paseador nunca llegó a la hora acordada",
		"category": "walker",
	})
	require.Equal(t, http.StatusCreated, st, string(body))
	ticket := decode[map[string]any](t, body)
	id := ticket["id"].(string)
	assert.Equal(t, "En Espera", ticket["status"])
	assert.Equal(t, "Paseadores", ticket["category"])

	// 2) Un dueño no puede responder
	st, _ = doReq(t, url, "POST", "/api/tickets/"+id+"/respond", owner, map[string]any{
		"content": "Respuesta no autorizada", "agentName": "Yo", "status": "Resuelto",
	})
	assert.Equal(t, http.StatusForbidden, st)

	// 3) Admin responde
	st, body = doReq(t, url, "POST", "/api/tickets/"+id+"/respond", admin, map[string]any{
		"content": "Hemos contactado al paseador y se reprogramó el paseo.", "agentName": "Ana Soporte", "status": "Resuelto",
	})
	require.Equal(t, http.StatusOK, st, string(body))
	result := decode[map[string]any](t, body)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, "Ana Soporte", result["agentName"])

	// 4) Segunda respuesta: conflicto del backend
	st, body = doReq(t, url, "POST", "/api/tickets/"+id+"/respond", admin, map[string]any{
		"content": "Otra respuesta para el mismo ticket", "agentName": "Soporte", "status": "Resuelto",
	})
	assert.Equal(t, http.StatusConflict, st, string(body))
	assert.Equal(t, "state", decode[map[string]any](t, body)["kind"])

	// 5) El dueño lo ve resuelto
	st, body = doReq(t, url, "GET", "/api/tickets/mine", owner, nil)
	require.Equal(t, http.StatusOK, st, string(body))
	mine := decode[[]map[string]any](t, body)
	require.Len(t, mine, 1)
	assert.Equal(t, "Resuelto", mine[0]["status"])
	resp := mine[0]["response"].(map[string]any)
	assert.Equal(t, "Ana Soporte", resp["agentName"])
	assert.NotEmpty(t, resp["date"])
}

func TestHTTP_ClosedTicketStatusIsFinal(t *testing.T) {
	url := newStack(t)

	st, body := doReq(t, url, "POST", "/api/tickets", owner, map[string]any{
		"subject": "Cobro duplicado",
		"message": "Me cobraron dos veces el mismo paseo",
	})
	require.Equal(t, http.StatusCreated, st, string(body))
	id := decode[map[string]any](t, body)["id"].(string)

	// cancelar sin justificación suficiente
	st, body = doReq(t, url, "PATCH", "/api/tickets/"+id+"/status", admin, map[string]any{"status": "Cancelada"})
	assert.Equal(t, http.StatusBadRequest, st, string(body))

	st, body = doReq(t, url, "POST", "/api/tickets/"+id+"/respond", admin, map[string]any{
		"content": "Ya devolvimos el cobro duplicado.", "agentName": "Ana Soporte", "status": "Resuelto",
	})
	require.Equal(t, http.StatusOK, st, string(body))

	st, body = doReq(t, url, "PATCH", "/api/tickets/"+id+"/status", admin, map[string]any{"status": "En Espera"})
	assert.Equal(t, http.StatusConflict, st, string(body))
	assert.Equal(t, "state", decode[map[string]any](t, body)["kind"])

	st, body = doReq(t, url, "PATCH", "/api/tickets/"+id+"/status", admin, map[string]any{"status": "Cancelada"})
	assert.Equal(t, http.StatusBadRequest, st, string(body))

	st, body = doReq(t, url, "PATCH", "/api/tickets/"+id+"/status", admin, map[string]any{
		"status": "Cancelada", "reason": "el usuario pidió cerrar el reclamo",
	})
	assert.Equal(t, http.StatusConflict, st, string(body))

	st, body = doReq(t, url, "GET", "/api/tickets/"+id, owner, nil)
	require.Equal(t, http.StatusOK, st, string(body))
	assert.Equal(t, "Resuelto", decode[map[string]any](t, body)["status"])
}

func requestWalk(t *testing.T, url string) string {
	t.Helper()
	st, body := doReq(t, url, "POST", "/api/walks", owner, map[string]any{
		"walkerId":          walker.userID,
		"scheduledDateTime": time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"startAddress":      "Av. Santa Fe 1500",
		"totalPrice":        4000,
		"petIds":            []string{"pet-1"},
	})
	require.Equal(t, http.StatusCreated, st, string(body))
	return decode[map[string]any](t, body)["id"].(string)
}

func TestHTTP_EndToEnd_AcceptCapacity(t *testing.T) {
	url := newStack(t)

	ids := make([]string, 6)
	for i := range ids {
		ids[i] = requestWalk(t, url)
	}

	for _, id := range ids[:5] {
		st, body := doReq(t, url, "POST", "/api/walks/"+id+"/accept", walker, nil)
		require.Equal(t, http.StatusOK, st, string(body))
	}

	st, body := doReq(t, url, "POST", "/api/walks/"+ids[5]+"/accept", walker, nil)
	assert.Equal(t, http.StatusConflict, st, string(body))
	assert.Equal(t, "capacity", decode[map[string]any](t, body)["kind"])

	// el sexto sigue solicitado
	st, body = doReq(t, url, "GET", "/api/walks/"+ids[5], owner, nil)
	require.Equal(t, http.StatusOK, st, string(body))
	assert.Equal(t, "Solicitado", decode[map[string]any](t, body)["status"])

	st, body = doReq(t, url, "GET", "/api/walks/agenda", walker, nil)
	require.Equal(t, http.StatusOK, st, string(body))
	agenda := decode[map[string]any](t, body)
	assert.EqualValues(t, 5, agenda["accepted"])
	assert.Equal(t, false, agenda["canAccept"])
}

func TestHTTP_EndToEnd_ChatFollowsWalkStatus(t *testing.T) {
	url := newStack(t)
	id := requestWalk(t, url)

	// Solicitado: no se puede escribir
	st, body := doReq(t, url, "POST", "/api/chat/trips/"+id+"/messages", owner, map[string]any{"text": "hola"})
	assert.Equal(t, http.StatusConflict, st, string(body))

	st, body = doReq(t, url, "POST", "/api/walks/"+id+"/accept", walker, nil)
	require.Equal(t, http.StatusOK, st, string(body))
	st, body = doReq(t, url, "POST", "/api/walks/"+id+"/payment", owner, map[string]any{"method": "card", "amount": 4000})
	require.Equal(t, http.StatusOK, st, string(body))
	st, body = doReq(t, url, "POST", "/api/walks/"+id+"/start", walker, nil)
	require.Equal(t, http.StatusOK, st, string(body))

	st, body = doReq(t, url, "POST", "/api/chat/trips/"+id+"/messages", owner, map[string]any{"text": "  ¿Todo bien?  "})
	require.Equal(t, http.StatusCreated, st, string(body))
	msg := decode[map[string]any](t, body)
	assert.Equal(t, "¿Todo bien?", msg["text"])
	assert.Equal(t, "owner", msg["sender"])

	st, body = doReq(t, url, "GET", "/api/chat/unread-count", walker, nil)
	require.Equal(t, http.StatusOK, st, string(body))
	assert.EqualValues(t, 1, decode[map[string]any](t, body)["unreadCount"])

	// tracking: solo el paseador reporta, y solo en activo
	st, body = doReq(t, url, "POST", "/api/tracking/trips/"+id+"/location", walker, map[string]any{"lat": -34.59, "lng": -58.39})
	require.Equal(t, http.StatusCreated, st, string(body))

	st, body = doReq(t, url, "GET", "/api/tracking/trips/"+id+"/route", owner, nil)
	require.Equal(t, http.StatusOK, st, string(body))
	route := decode[map[string]any](t, body)
	assert.Len(t, route["route"], 1)

	// un tercero no ve el paseo
	st, _ = doReq(t, url, "GET", "/api/walks/"+id, identity{"intruso", "owner"}, nil)
	assert.Equal(t, http.StatusNotFound, st)
}

func activeTrip(t *testing.T, url string) string {
	t.Helper()
	id := requestWalk(t, url)
	for _, step := range []struct {
		who  identity
		path string
		body any
	}{
		{walker, "/accept", nil},
		{owner, "/payment", map[string]any{"method": "card", "amount": 4000}},
		{walker, "/start", nil},
	} {
		st, body := doReq(t, url, "POST", "/api/walks/"+id+step.path, step.who, step.body)
		require.Equal(t, http.StatusOK, st, string(body))
	}
	return id
}

func TestHTTP_ChatAndTrackingOnlyForTripParticipants(t *testing.T) {
	url := newStack(t)
	id := activeTrip(t, url)
	stranger := identity{"stranger-9", "owner"}
	otherWalker := identity{"walker-2", "walker"}

	st, body := doReq(t, url, "POST", "/api/chat/trips/"+id+"/messages", stranger, map[string]any{"text": "hola"})
	assert.Equal(t, http.StatusNotFound, st, string(body))
	st, body = doReq(t, url, "GET", "/api/chat/trips/"+id+"/messages", stranger, nil)
	assert.Equal(t, http.StatusNotFound, st, string(body))
	st, body = doReq(t, url, "PUT", "/api/chat/trips/"+id+"/messages/read", stranger, nil)
	assert.Equal(t, http.StatusNotFound, st, string(body))

	// el remitente sale del lado en el paseo, no del rol declarado
	st, body = doReq(t, url, "POST", "/api/chat/trips/"+id+"/messages", identity{walker.userID, "owner"}, map[string]any{"text": "Ya salimos"})
	require.Equal(t, http.StatusCreated, st, string(body))
	assert.Equal(t, "walker", decode[map[string]any](t, body)["sender"])

	// admin lee pero no escribe
	st, body = doReq(t, url, "GET", "/api/chat/trips/"+id+"/messages", admin, nil)
	require.Equal(t, http.StatusOK, st, string(body))
	view := decode[map[string]any](t, body)
	require.Len(t, view["messages"], 1)
	assert.Equal(t, "walker", view["messages"].([]any)[0].(map[string]any)["sender"])
	st, _ = doReq(t, url, "POST", "/api/chat/trips/"+id+"/messages", admin, map[string]any{"text": "hola"})
	assert.Equal(t, http.StatusForbidden, st)

	st, body = doReq(t, url, "GET", "/api/tracking/trips/"+id+"/route", stranger, nil)
	assert.Equal(t, http.StatusNotFound, st, string(body))
	st, body = doReq(t, url, "GET", "/api/tracking/trips/"+id+"/availability", stranger, nil)
	assert.Equal(t, http.StatusNotFound, st, string(body))
	st, body = doReq(t, url, "POST", "/api/tracking/trips/"+id+"/location", otherWalker, map[string]any{"lat": -34.6, "lng": -58.4})
	assert.Equal(t, http.StatusNotFound, st, string(body))

	st, body = doReq(t, url, "GET", "/api/tracking/trips/"+id+"/route", owner, nil)
	require.Equal(t, http.StatusOK, st, string(body))
	assert.Empty(t, decode[map[string]any](t, body)["route"])
}
