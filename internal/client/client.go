package client

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/gridwm/internal/models"
)

const (
	DefaultSocketPath = "/tmp/grid-server.sock"
	DefaultTimeout    = 5 * time.Second
)

// Client is the GridServer client
type Client struct {
	socketPath string
	timeout    time.Duration
	conn       *Connection
}

// NewClient creates a new GridServer client
func NewClient(socketPath string, timeout time.Duration) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		socketPath: socketPath,
		timeout:    timeout,
		conn:       NewConnection(socketPath, timeout),
	}
}

// Connect establishes connection to the server
func (c *Client) Connect() error {
	return c.conn.Connect()
}

// Close closes the connection
func (c *Client) Close() error {
	return c.conn.Close()
}

// request is a helper to send a request and get the response
func (c *Client) request(ctx context.Context, method string, params map[string]interface{}) (*models.Response, error) {
	if !c.conn.IsConnected() {
		if err := c.Connect(); err != nil {
			return nil, err
		}
	}

	req := models.NewRequest(uuid.New().String(), method, params)
	resp, err := c.conn.SendRequest(ctx, req)
	if err != nil {
		// Drop the connection so the next call redials.
		c.conn.Close()
		return nil, err
	}
	return resp, nil
}

// Ping sends a ping request to test connectivity
func (c *Client) Ping(ctx context.Context) (map[string]interface{}, error) {
	return c.CallMethod(ctx, "ping", nil)
}

// Dump retrieves the complete window manager state
func (c *Client) Dump(ctx context.Context) (map[string]interface{}, error) {
	return c.CallMethod(ctx, "dump", map[string]interface{}{})
}

// CallMethod sends a generic RPC request with the given method and parameters
func (c *Client) CallMethod(ctx context.Context, method string, params map[string]interface{}) (map[string]interface{}, error) {
	resp, err := c.request(ctx, method, params)
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, fmt.Errorf("server error: %s", resp.GetError())
	}

	return resp.Result, nil
}

// Subscription is a stream of server events on its own connection.
type Subscription struct {
	conn   *Connection
	events chan *models.Event
	err    error
}

// Events delivers events until the subscription ends, then is closed.
func (s *Subscription) Events() <-chan *models.Event { return s.events }

// Err reports why the stream ended. Only valid once Events is closed.
func (s *Subscription) Err() error { return s.err }

// Close ends the subscription.
func (s *Subscription) Close() error { return s.conn.Close() }

// Subscribe opens a dedicated connection and asks the server to push the
// given event types. Events are delivered until ctx is done or the
// connection drops.
func (c *Client) Subscribe(ctx context.Context, eventTypes []string) (*Subscription, error) {
	conn := NewConnection(c.socketPath, c.timeout)
	if err := conn.Connect(); err != nil {
		return nil, err
	}

	req := models.NewRequest(uuid.New().String(), "subscribe", map[string]interface{}{
		"events": eventTypes,
	})
	resp, err := conn.SendRequest(ctx, req)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("subscribe failed: %w", err)
	}
	if resp.IsError() {
		conn.Close()
		return nil, fmt.Errorf("server error: %s", resp.GetError())
	}

	sub := &Subscription{conn: conn, events: make(chan *models.Event, 64)}
	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	go sub.read(ctx)
	return sub, nil
}

func (s *Subscription) read(ctx context.Context) {
	defer close(s.events)
	for {
		envelope, err := s.conn.ReadEnvelope()
		if err != nil {
			if ctx.Err() != nil {
				err = ctx.Err()
			}
			s.err = err
			return
		}
		if envelope.Type != models.TypeEvent || envelope.Event == nil {
			continue
		}
		select {
		case s.events <- envelope.Event:
		case <-ctx.Done():
			s.err = ctx.Err()
			return
		}
	}
}
