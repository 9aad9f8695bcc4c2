package cubenet

import (
	"time"

	"go.uber.org/zap"

	"github.com/cuckooemm/cubenet/codec"
)

type Options struct {
	// WaitTimeout bounds each epoll wait, so queued writes and closes are
	// serviced even when no socket is active.
	WaitTimeout time.Duration
	// BatchSize is the maximum number of events taken per epoll wait.
	BatchSize int
	// MaxMessageSize is the largest accepted frame payload. Larger
	// declared lengths close the connection.
	MaxMessageSize int
	// ReadBufferSize is the size of the reactor's read buffer.
	ReadBufferSize int
	// Obfuscate enables the XOR payload layer on framed messages.
	Obfuscate bool
	// ReusePort binds the listener with SO_REUSEPORT.
	ReusePort    bool
	TcpKeepAlive time.Duration
	Logger       *zap.Logger
}

const (
	defaultWaitTimeout    = 100 * time.Millisecond
	defaultBatchSize      = 128
	defaultReadBufferSize = 0x10000 // 65536
)

func (o Options) withDefaults() Options {
	if o.WaitTimeout <= 0 {
		o.WaitTimeout = defaultWaitTimeout
	}
	if o.BatchSize <= 0 {
		o.BatchSize = defaultBatchSize
	}
	if o.MaxMessageSize <= 0 {
		o.MaxMessageSize = codec.DefaultMaxSize
	}
	if o.ReadBufferSize <= 0 {
		o.ReadBufferSize = defaultReadBufferSize
	}
	if o.Logger == nil {
		o.Logger = defaultLogger()
	}
	return o
}

func defaultLogger() *zap.Logger {
	l, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return l.Named("cubenet")
}
