package transport

import (
	"fmt"
	"io"
	"log"

	"github.com/go-stomp/stomp/v3"
	"github.com/gorilla/websocket"
)

// Dialer opens a new Session against the broker at the given URL.
type Dialer interface {
	Dial(brokerURL string) (Session, error)
}

// StompDialer speaks STOMP over a websocket connection, the framing the
// platform's broker exposes at its /ws endpoint.
type StompDialer struct {
	Logger *log.Logger
}

func (d *StompDialer) Dial(brokerURL string) (Session, error) {
	wsConn, _, err := websocket.DefaultDialer.Dial(brokerURL, nil)
	if err != nil {
		return nil, fmt.Errorf("transport: dial %s: %w", brokerURL, err)
	}

	conn, err := stomp.Connect(newWSStream(wsConn))
	if err != nil {
		wsConn.Close()
		return nil, fmt.Errorf("transport: stomp connect: %w", err)
	}

	incSessions()
	d.Logger.Printf("transport: connected to broker at %s", brokerURL)
	return newStompSession(conn, d.Logger), nil
}

// wsStream adapts a websocket connection to the io.ReadWriteCloser the STOMP
// client expects. STOMP frames travel as text messages; one frame may span
// several reads.
type wsStream struct {
	conn   *websocket.Conn
	reader io.Reader
}

func newWSStream(conn *websocket.Conn) *wsStream {
	return &wsStream{conn: conn}
}

func (w *wsStream) Read(p []byte) (int, error) {
	for {
		if w.reader == nil {
			_, r, err := w.conn.NextReader()
			if err != nil {
				return 0, err
			}
			w.reader = r
		}
		n, err := w.reader.Read(p)
		if err == io.EOF {
			w.reader = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (w *wsStream) Write(p []byte) (int, error) {
	if err := w.conn.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *wsStream) Close() error {
	w.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return w.conn.Close()
}
