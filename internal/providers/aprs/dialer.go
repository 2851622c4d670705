package aprs

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"time"
)

// defaultServer is the public APRS-IS rotating server pool address.
const defaultServer = "rotate.aprs2.net:14580"

// idleTimeout closes and reconnects a connection that has produced no
// line in this long, guarding against a half-open socket.
const idleTimeout = 5 * time.Minute

// Conn is a line-oriented connection to an APRS-IS server: send the
// login line, then read frames until closed.
type Conn interface {
	// ReadLine blocks until a complete line is available, the
	// connection is closed, or the idle timeout elapses.
	ReadLine() (string, error)
	// WriteLine sends one line, appending the protocol's newline.
	WriteLine(line string) error
	Close() error
}

// Dialer opens a new Conn to the server pool.
type Dialer interface {
	Dial(ctx context.Context) (Conn, error)
}

type tcpDialer struct {
	server string
}

// NewDialer creates a Dialer against server (host:port), or the public
// rotating pool if server is empty.
func NewDialer(server string) Dialer {
	if server == "" {
		server = defaultServer
	}
	return &tcpDialer{server: server}
}

func (d *tcpDialer) Dial(ctx context.Context) (Conn, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", d.server)
	if err != nil {
		return nil, fmt.Errorf("aprs: dial %s: %w", d.server, err)
	}
	return &tcpConn{conn: conn, scanner: bufio.NewScanner(conn)}, nil
}

type tcpConn struct {
	conn    net.Conn
	scanner *bufio.Scanner
}

func (c *tcpConn) ReadLine() (string, error) {
	c.conn.SetReadDeadline(time.Now().Add(idleTimeout))
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("aprs: connection closed")
	}
	return c.scanner.Text(), nil
}

func (c *tcpConn) WriteLine(line string) error {
	_, err := c.conn.Write([]byte(line + "\r\n"))
	return err
}

func (c *tcpConn) Close() error {
	return c.conn.Close()
}
