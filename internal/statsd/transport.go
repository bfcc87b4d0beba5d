package statsd

import (
	"net"
	"strings"
)

// Transport delivers encoded lines to the endpoint as single UDP datagrams.
// Delivery is fire-and-forget: no retry, no buffering, no backpressure.
type Transport struct {
	conn net.Conn
}

// Dial opens a UDP connection to addr ("host:port").
func Dial(addr string) (*Transport, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, err
	}
	return &Transport{conn: conn}, nil
}

// Send joins lines with '\n' and writes them as one datagram. An empty batch
// is a no-op.
func (t *Transport) Send(lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	_, err := t.conn.Write([]byte(strings.Join(lines, "\n")))
	return err
}

// Close releases the socket.
func (t *Transport) Close() error {
	return t.conn.Close()
}
