// Package wsconn envuelve una conexión gorilla/websocket con escrituras
// serializadas y un loop de lectura con deadlines.
package wsconn

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	readLimit    = 4096
	readTimeout  = 60 * time.Second
	writeTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// El origen ya lo filtra el middleware de CORS.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Conn struct {
	ws  *websocket.Conn
	wmu sync.Mutex

	closeOnce sync.Once
}

func Upgrade(w http.ResponseWriter, r *http.Request) (*Conn, error) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return &Conn{ws: ws}, nil
}

// WriteJSON es seguro para llamadas concurrentes.
func (c *Conn) WriteJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	c.wmu.Lock()
	defer c.wmu.Unlock()

	_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteMessage(websocket.TextMessage, b)
}

// ReadLoop bloquea hasta que el cliente cierre o falle la lectura. Un "ping"
// de texto se contesta con "pong"; el resto se entrega a onMessage.
func (c *Conn) ReadLoop(onMessage func([]byte)) {
	c.ws.SetReadLimit(readLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(readTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		mt, msg, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(readTimeout))

		if mt != websocket.TextMessage {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(string(msg)), "ping") {
			c.wmu.Lock()
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			_ = c.ws.WriteMessage(websocket.TextMessage, []byte("pong"))
			c.wmu.Unlock()
			continue
		}
		if onMessage != nil {
			onMessage(msg)
		}
	}
}

func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		c.wmu.Lock()
		_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
		_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		c.wmu.Unlock()
		_ = c.ws.Close()
	})
}
