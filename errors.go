package cubenet

import "github.com/pkg/errors"

var (
	ErrServerClosed  = errors.New("server is not running")
	ErrServerRunning = errors.New("server is already running")
	ErrNoHandler     = errors.New("no handler set")
)
