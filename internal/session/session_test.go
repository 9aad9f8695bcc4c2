package session

import (
	"bytes"
	"crypto/tls"
	"io"
	"net"
	"os"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/sys/unix"

	"github.com/cuckooemm/cubenet/internal/socket"
	"github.com/cuckooemm/cubenet/internal/testcert"
)

// socketPair returns a non-blocking raw end for the session and a regular
// blocking net.Conn for the peer.
func socketPair(t *testing.T) (int, net.Conn) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		t.Fatalf("socketpair: %v", err)
	}
	if err = socket.SetNonblock(fds[0]); err != nil {
		t.Fatalf("nonblock: %v", err)
	}
	f := os.NewFile(uintptr(fds[1]), "peer")
	peer, err := net.FileConn(f)
	_ = f.Close()
	if err != nil {
		t.Fatalf("file conn: %v", err)
	}
	return fds[0], peer
}

// until retries op every millisecond until it stops returning ErrWouldBlock.
func until(d time.Duration, op func() error) error {
	deadline := time.Now().Add(d)
	for {
		err := op()
		if !IsRetryable(err) || time.Now().After(deadline) {
			return err
		}
		time.Sleep(time.Millisecond)
	}
}

func readSome(s *Session, p []byte) (n int, err error) {
	err = until(2*time.Second, func() error {
		n, err = s.Read(p)
		return err
	})
	return
}

func TestPlaintextSession(t *testing.T) {
	Convey("Given a plaintext session over a socket pair", t, func() {
		fd, peer := socketPair(t)
		s := NewPlain(socket.Raw(fd))
		Reset(func() {
			s.Close()
			_ = peer.Close()
			_ = unix.Close(fd)
		})
		So(s.State(), ShouldEqual, Plaintext)
		So(s.Handshake(), ShouldBeNil)

		Convey("Reading with nothing buffered would block", func() {
			_, err := s.Read(make([]byte, 8))
			So(err, ShouldEqual, ErrWouldBlock)
		})

		Convey("Bytes pass through in both directions", func() {
			_, err := peer.Write([]byte("hello"))
			So(err, ShouldBeNil)
			p := make([]byte, 16)
			n, err := readSome(s, p)
			So(err, ShouldBeNil)
			So(string(p[:n]), ShouldEqual, "hello")

			n, err = s.Write([]byte("world"))
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 5)
			_, err = io.ReadFull(peer, p[:5])
			So(err, ShouldBeNil)
			So(string(p[:5]), ShouldEqual, "world")
		})

		Convey("A full socket buffer reports a short write as would-block", func() {
			big := make([]byte, 8<<20)
			n, err := s.Write(big)
			So(err, ShouldEqual, ErrWouldBlock)
			So(n, ShouldBeLessThan, len(big))
		})

		Convey("A closed peer reads as EOF", func() {
			So(peer.Close(), ShouldBeNil)
			_, err := readSome(s, make([]byte, 8))
			So(err, ShouldEqual, io.EOF)
			So(s.State(), ShouldEqual, Closed)
		})
	})
}

func TestTLSSession(t *testing.T) {
	certs, err := testcert.New()
	if err != nil {
		t.Fatalf("certs: %v", err)
	}

	Convey("Given a server TLS session over a socket pair", t, func() {
		fd, peer := socketPair(t)
		s := NewServer(socket.Raw(fd), certs.ServerConfig(), nil)
		Reset(func() {
			s.Close()
			_ = peer.Close()
			_ = unix.Close(fd)
		})
		So(s.State(), ShouldEqual, Handshaking)

		Convey("The first step waits for the client hello", func() {
			So(s.Handshake(), ShouldEqual, ErrWouldBlock)
			So(s.State(), ShouldEqual, Handshaking)

			Convey("Closing a parked handshake returns promptly", func() {
				closed := make(chan struct{})
				go func() {
					s.Close()
					close(closed)
				}()
				select {
				case <-closed:
				case <-time.After(2 * time.Second):
					t.Fatal("close hung on a parked handshake")
				}
				So(s.State(), ShouldEqual, Closed)
				So(s.Handshake(), ShouldEqual, ErrClosed)
			})
		})

		Convey("A client completes the handshake and exchanges data", func() {
			client := tls.Client(peer, certs.ClientConfig())
			clientErr := make(chan error, 1)
			go func() { clientErr <- client.Handshake() }()

			err := until(5*time.Second, s.Handshake)
			So(err, ShouldBeNil)
			So(s.State(), ShouldEqual, Established)
			So(<-clientErr, ShouldBeNil)
			cs, ok := s.ConnectionState()
			So(ok, ShouldBeTrue)
			So(cs.HandshakeComplete, ShouldBeTrue)

			_, err = client.Write([]byte("hello over tls"))
			So(err, ShouldBeNil)
			p := make([]byte, 64)
			n, err := readSome(s, p)
			So(err, ShouldBeNil)
			So(string(p[:n]), ShouldEqual, "hello over tls")

			Convey("Large writes are delivered in order across retries", func() {
				payload := bytes.Repeat([]byte("0123456789abcdef"), 64<<10) // 1 MiB
				got := make(chan []byte, 1)
				go func() {
					b := make([]byte, len(payload))
					_, _ = io.ReadFull(client, b)
					got <- b
				}()
				off := 0
				err := until(10*time.Second, func() error {
					for off < len(payload) {
						n, err := s.Write(payload[off:])
						off += n
						if err != nil {
							return err
						}
					}
					return nil
				})
				So(err, ShouldBeNil)
				So(off, ShouldEqual, len(payload))
				So(bytes.Equal(<-got, payload), ShouldBeTrue)
			})

			Convey("close_notify from the client reads as EOF", func() {
				So(client.Close(), ShouldBeNil)
				_, err := readSome(s, p)
				So(err, ShouldEqual, io.EOF)
				So(s.State(), ShouldEqual, Closed)
			})
		})

		Convey("Garbage instead of a client hello is fatal", func() {
			_, err := peer.Write([]byte("GET / HTTP/1.1\r\nHost: x\r\n\r\n"))
			So(err, ShouldBeNil)
			err = until(2*time.Second, s.Handshake)
			So(err, ShouldNotBeNil)
			So(IsRetryable(err), ShouldBeFalse)
			So(s.State(), ShouldEqual, Closed)
			So(s.Err(), ShouldNotBeNil)
		})
	})
}
