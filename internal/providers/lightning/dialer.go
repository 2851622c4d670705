package lightning

import (
	"context"

	"github.com/gorilla/websocket"
)

// defaultURL is the public Blitzortung strike-stream endpoint.
const defaultURL = "wss://ws1.blitzortung.org/"

// Conn is the subset of *websocket.Conn the collector depends on, so
// tests can substitute a fake without opening a real socket.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

// Dialer opens a new streaming connection.
type Dialer interface {
	Dial(ctx context.Context) (Conn, error)
}

type wsDialer struct {
	url string
}

// NewDialer creates a Dialer against url using gorilla/websocket.
func NewDialer(url string) Dialer {
	if url == "" {
		url = defaultURL
	}
	return &wsDialer{url: url}
}

func (d *wsDialer) Dial(ctx context.Context) (Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, d.url, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}
