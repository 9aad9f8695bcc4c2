// cubecat sends one framed message to a cubenet server and prints the reply.
package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/droundy/goopt"

	"github.com/cuckooemm/cubenet"
	"github.com/cuckooemm/cubenet/internal/logger"
)

var (
	addr      = "127.0.0.1:7000"
	sendData  []byte
	useTLS    bool
	insecure  bool
	obfuscate bool
	timeout   = 5 * time.Second
	verbose   bool
)

func init() {
	goopt.ReqArg([]string{"--addr", "-a"}, "HOST:PORT", "Server address",
		func(s string) error {
			addr = s
			return nil
		})
	goopt.ReqArg([]string{"--data", "-D"}, "DATA", "Data to send, read from stdin if absent",
		func(s string) error {
			sendData = []byte(s)
			return nil
		})
	goopt.NoArg([]string{"--tls"}, "Connect with TLS",
		func() error {
			useTLS = true
			return nil
		})
	goopt.NoArg([]string{"--insecure", "-k"}, "Skip server certificate verification",
		func() error {
			insecure = true
			return nil
		})
	goopt.NoArg([]string{"--obfuscate"}, "Obfuscate payloads",
		func() error {
			obfuscate = true
			return nil
		})
	goopt.ReqArg([]string{"--timeout"}, "SEC", "Give up after SEC seconds",
		func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid timeout %q", s)
			}
			timeout = time.Duration(n) * time.Second
			return nil
		})
	goopt.NoArg([]string{"--verbose", "-v"}, "Log failures",
		func() error {
			verbose = true
			return nil
		})

	goopt.Summary = "send one message to a cubenet server"
}

func fatalf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, "cubecat: "+format+"\n", v...)
	os.Exit(1)
}

func main() {
	goopt.Parse(nil)

	if sendData == nil {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			fatalf("read stdin: %v", err)
		}
		sendData = b
	}
	if len(sendData) == 0 {
		fatalf("nothing to send")
	}

	cl := &cubenet.Client{Timeout: timeout, Obfuscate: obfuscate}
	if useTLS {
		cl.Config = &tls.Config{InsecureSkipVerify: insecure, MinVersion: tls.VersionTLS12}
	}
	if verbose {
		if l, err := logger.New("debug"); err == nil {
			cl.Logger = l
		}
	}
	reply, err := cl.Call(context.Background(), addr, sendData)
	if err != nil {
		fatalf("%v", err)
	}
	os.Stdout.Write(reply)
	if reply[len(reply)-1] != '\n' {
		fmt.Println()
	}
}
