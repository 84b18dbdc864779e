package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/yourusername/gridwm/internal/models"
)

// Connection manages the Unix domain socket connection to GridServer
type Connection struct {
	socketPath string
	timeout    time.Duration

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
}

// NewConnection creates a new connection instance
func NewConnection(socketPath string, timeout time.Duration) *Connection {
	return &Connection{
		socketPath: socketPath,
		timeout:    timeout,
	}
}

// Connect establishes the Unix domain socket connection
func (c *Connection) Connect() error {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect to socket %s: %w", c.socketPath, err)
	}
	c.mu.Lock()
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	c.mu.Unlock()
	return nil
}

// Close closes the connection
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// SendRequest sends a request and waits for the response. Requests on one
// connection are serialized.
func (c *Connection) SendRequest(ctx context.Context, req *models.MessageEnvelope) (*models.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil, fmt.Errorf("not connected to %s", c.socketPath)
	}

	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Send with newline delimiter
	data = append(data, '\n')
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, fmt.Errorf("failed to set write deadline: %w", err)
	}
	if _, err := c.conn.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write request: %w", err)
	}

	type result struct {
		resp *models.Response
		err  error
	}
	done := make(chan result, 1)
	conn, reader := c.conn, c.reader

	go func() {
		if err := conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			done <- result{err: fmt.Errorf("failed to set read deadline: %w", err)}
			return
		}
		envelope, err := readEnvelope(reader)
		if err != nil {
			done <- result{err: err}
			return
		}
		if envelope.Type != models.TypeResponse {
			done <- result{err: fmt.Errorf("expected response, got %s", envelope.Type)}
			return
		}
		if envelope.Response == nil {
			done <- result{err: fmt.Errorf("response envelope has nil response")}
			return
		}
		done <- result{resp: envelope.Response}
	}()

	select {
	case <-ctx.Done():
		// Unblock the reader; the connection is unusable after this.
		_ = conn.SetReadDeadline(time.Now())
		return nil, fmt.Errorf("request cancelled or timed out: %w", ctx.Err())
	case r := <-done:
		return r.resp, r.err
	}
}

// ReadEnvelope blocks until the next message arrives. It is used on
// subscription connections, which have no read deadline.
func (c *Connection) ReadEnvelope() (*models.MessageEnvelope, error) {
	c.mu.Lock()
	conn, reader := c.conn, c.reader
	c.mu.Unlock()
	if conn == nil {
		return nil, fmt.Errorf("not connected to %s", c.socketPath)
	}
	if err := conn.SetReadDeadline(time.Time{}); err != nil {
		return nil, fmt.Errorf("failed to clear read deadline: %w", err)
	}
	return readEnvelope(reader)
}

func readEnvelope(r *bufio.Reader) (*models.MessageEnvelope, error) {
	line, err := r.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read message: %w", err)
	}
	var envelope models.MessageEnvelope
	if err := json.Unmarshal(line, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return &envelope, nil
}

// IsConnected returns true if the connection is established
func (c *Connection) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}
