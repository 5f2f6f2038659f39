package bridge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client sends requests to a bridge Server.
type Client struct {
	url    string
	dialer *websocket.Dialer
}

// NewClient creates a client for the agent listening on addr. addr may be a
// host:port or a full ws:// URL.
func NewClient(addr string) *Client {
	return &Client{
		url: endpointURL(addr),
		dialer: &websocket.Dialer{
			HandshakeTimeout: 5 * time.Second,
		},
	}
}

func endpointURL(addr string) string {
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		return addr
	}
	addr = strings.TrimPrefix(addr, "http://")
	u := url.URL{Scheme: "ws", Host: strings.TrimRight(addr, "/"), Path: Path}
	return u.String()
}

// ListenAddr returns the host:port an agent serves addr on. addr takes the
// same forms as NewClient; a URL path other than Path is rejected.
func ListenAddr(addr string) (string, error) {
	u, err := url.Parse(endpointURL(addr))
	if err != nil {
		return "", fmt.Errorf("agent address %q: %w", addr, err)
	}
	if u.Path != "" && u.Path != Path {
		return "", fmt.Errorf("agent address %q: path must be %s", addr, Path)
	}
	if _, _, err := net.SplitHostPort(u.Host); err != nil {
		return "", fmt.Errorf("agent address %q: %w", addr, err)
	}
	return u.Host, nil
}

// URL returns the websocket endpoint the client dials.
func (c *Client) URL() string { return c.url }

// Send delivers req and waits for its one reply. A Reply with Success false
// is returned without error. ErrNoReceiver is returned when nothing answers.
func (c *Client) Send(ctx context.Context, req Request) (Reply, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		if ctx.Err() != nil {
			return Reply{}, ctx.Err()
		}
		return Reply{}, fmt.Errorf("%w: %v", ErrNoReceiver, err)
	}
	defer conn.Close()

	// Unblock the read below when the caller gives up.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if err := conn.WriteJSON(req); err != nil {
		if ctx.Err() != nil {
			return Reply{}, ctx.Err()
		}
		return Reply{}, fmt.Errorf("%w: %v", ErrNoReceiver, err)
	}

	var reply Reply
	if err := conn.ReadJSON(&reply); err != nil {
		if ctx.Err() != nil {
			return Reply{}, ctx.Err()
		}
		if isConnectionLoss(err) {
			return Reply{}, fmt.Errorf("%w: %v", ErrNoReceiver, err)
		}
		return Reply{}, fmt.Errorf("reading reply: %w", err)
	}
	if reply.ID != req.ID {
		return Reply{}, fmt.Errorf("%w: sent %s, got %q", ErrReplyMismatch, req.ID, reply.ID)
	}

	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return reply, nil
}

func isConnectionLoss(err error) bool {
	var closeErr *websocket.CloseError
	var netErr net.Error
	return errors.As(err, &closeErr) || errors.As(err, &netErr) ||
		errors.Is(err, net.ErrClosed) || strings.Contains(err.Error(), "EOF")
}
