package cubenet

import (
	"context"
	"crypto/tls"
	"net"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/cuckooemm/cubenet/codec"
)

// Client makes one-shot framed request/reply calls to a cubenet server. It
// uses blocking sockets and is meant for goroutines outside the reactor,
// such as handing a session over to another server.
type Client struct {
	// Config enables TLS when set.
	Config *tls.Config
	// Timeout bounds a whole call, dial included. Zero means no limit
	// beyond the context.
	Timeout        time.Duration
	MaxMessageSize int
	Obfuscate      bool
	Logger         *zap.Logger
}

type dialer interface {
	DialContext(ctx context.Context, network, addr string) (net.Conn, error)
}

// Call dials addr, sends payload as one frame and returns the payload of the
// first frame read back.
func (c *Client) Call(ctx context.Context, addr string, payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, codec.ErrZeroLength
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var d dialer = &net.Dialer{}
	if c.Config != nil {
		d = &tls.Dialer{Config: c.Config}
	}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", addr)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	if _, err = conn.Write(codec.Encode(payload, c.Obfuscate)); err != nil {
		return nil, errors.Wrapf(err, "send to %s", addr)
	}
	max := c.MaxMessageSize
	if max <= 0 {
		max = codec.DefaultMaxSize
	}
	reply, err := codec.ReadFrame(conn, max, c.Obfuscate)
	if err != nil {
		return nil, errors.Wrapf(err, "reply from %s", addr)
	}
	c.logger().Debug("call done", zap.String("addr", addr),
		zap.Int("sent", len(payload)), zap.Int("received", len(reply)))
	return reply, nil
}

// Request runs Call on a new goroutine and passes the outcome to fn on that
// same goroutine.
func (c *Client) Request(addr string, payload []byte, fn func(reply []byte, err error)) {
	go func() {
		reply, err := c.Call(context.Background(), addr, payload)
		if err != nil {
			c.logger().Debug("request failed", zap.String("addr", addr), zap.Error(err))
		}
		if fn != nil {
			fn(reply, err)
		}
	}()
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
