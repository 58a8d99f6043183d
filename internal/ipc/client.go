package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// Client talks to a running daemon over the control socket.
type Client struct {
	socket string
}

// NewClient creates a Client. An empty socket selects SocketPath.
func NewClient(socket string) *Client {
	if socket == "" {
		socket = SocketPath()
	}
	return &Client{socket: socket}
}

// Do sends one request and waits for the response.
func (c *Client) Do(req Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socket, 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("connect to daemon at %s (is `chibi daemon` running?): %w", c.socket, err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(connTimeout))

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if !resp.OK {
		return &resp, fmt.Errorf("daemon: %s", resp.Error)
	}
	return &resp, nil
}

// Ping checks that a daemon is answering on the socket.
func (c *Client) Ping() error {
	_, err := c.Do(Request{Op: OpPing})
	return err
}
