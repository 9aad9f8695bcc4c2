// cubenetd serves framed messages over TLS or plaintext TCP and echoes each
// one back to its sender.
package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/droundy/goopt"
	"go.uber.org/zap"

	"github.com/cuckooemm/cubenet"
	"github.com/cuckooemm/cubenet/internal/config"
	"github.com/cuckooemm/cubenet/internal/logger"
)

var (
	configPath string
	port       = -1
	verbose    bool
)

func init() {
	goopt.ReqArg([]string{"--config", "-c"}, "FILE", "Read configuration from FILE",
		func(s string) error {
			configPath = s
			return nil
		})
	goopt.ReqArg([]string{"--port", "-p"}, "PORT", "Listen on PORT instead of the configured one",
		func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 || n > 65535 {
				return fmt.Errorf("invalid port %q", s)
			}
			port = n
			return nil
		})
	goopt.NoArg([]string{"--verbose", "-v"}, "Log at debug level",
		func() error {
			verbose = true
			return nil
		})

	goopt.Summary = "cubenet echo daemon"
	goopt.Description = func() string {
		return `cubenetd accepts TCP connections, optionally secured with TLS, reads
length-prefixed messages and sends each of them back unchanged.`
	}
}

type echo struct {
	srv    *cubenet.Server
	logger *zap.Logger
}

func (e *echo) OnConnOpened(fd int, peer net.Addr) {
	e.logger.Info("connection opened", zap.Int("fd", fd), zap.Stringer("peer", peer))
}

func (e *echo) OnRecv(fd int, data []byte) cubenet.Operation {
	e.logger.Debug("recv", zap.Int("fd", fd), zap.Int("bytes", len(data)))
	return cubenet.None
}

func (e *echo) OnMessage(fd int, payload []byte) cubenet.Operation {
	if err := e.srv.SendMessage(fd, payload, false); err != nil {
		e.logger.Warn("echo failed", zap.Int("fd", fd), zap.Error(err))
		return cubenet.Close
	}
	return cubenet.None
}

func (e *echo) OnConnClosed(fd int) {
	e.logger.Info("connection closed", zap.Int("fd", fd))
}

func main() {
	goopt.Parse(nil)

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cubenetd: %v\n", err)
		os.Exit(1)
	}
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logr, err := logger.New(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cubenetd: %v\n", err)
		os.Exit(1)
	}
	defer logr.Sync()

	if port >= 0 {
		cfg.Server.Port = port
	}
	h := &echo{logger: logr}
	srv := cubenet.NewServer(h, cubenet.Options{
		WaitTimeout:    cfg.Reactor.WaitTimeout,
		BatchSize:      cfg.Reactor.BatchSize,
		MaxMessageSize: cfg.Codec.MaxMessageSize,
		ReadBufferSize: cfg.Reactor.ReadBufferSize,
		Obfuscate:      cfg.Codec.Obfuscate,
		ReusePort:      cfg.Server.ReusePort,
		TcpKeepAlive:   cfg.Server.KeepAlive,
		Logger:         logr,
	})
	h.srv = srv
	if err = srv.Start(cfg.Server.Port, cfg.Server.KeyFile, cfg.Server.CertFile); err != nil {
		logr.Fatal("failed to start", zap.Error(err))
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	tick := time.NewTicker(time.Second)
	defer tick.Stop()
wait:
	for {
		select {
		case s := <-sig:
			logr.Info("signal received", zap.Stringer("signal", s))
			break wait
		case <-tick.C:
			if !srv.IsRunning() {
				break wait
			}
		}
	}
	if err = srv.Stop(); err != nil {
		logr.Warn("stop", zap.Error(err))
	}
}
