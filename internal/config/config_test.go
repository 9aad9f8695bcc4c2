package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadConfig(t *testing.T) {
	Convey("Without a file every field has its default", t, func() {
		c, err := LoadConfig("")
		So(err, ShouldBeNil)
		So(c.Server.Port, ShouldEqual, 7000)
		So(c.Server.KeyFile, ShouldBeEmpty)
		So(c.Reactor.WaitTimeout, ShouldEqual, 100*time.Millisecond)
		So(c.Reactor.BatchSize, ShouldEqual, 128)
		So(c.Reactor.ReadBufferSize, ShouldEqual, 65536)
		So(c.Codec.MaxMessageSize, ShouldEqual, 1<<20)
		So(c.Codec.Obfuscate, ShouldBeFalse)
		So(c.Log.Level, ShouldEqual, "info")
	})

	Convey("A YAML file overrides defaults", t, func() {
		path := filepath.Join(t.TempDir(), "cubenet.yaml")
		So(os.WriteFile(path, []byte(`
server:
  port: 9100
  key_file: /etc/cubenet/server.key
  cert_file: /etc/cubenet/server.crt
  keepalive: 30s
reactor:
  wait_timeout: 250ms
codec:
  obfuscate: true
log:
  level: debug
`), 0644), ShouldBeNil)

		c, err := LoadConfig(path)
		So(err, ShouldBeNil)
		So(c.Server.Port, ShouldEqual, 9100)
		So(c.Server.KeyFile, ShouldEqual, "/etc/cubenet/server.key")
		So(c.Server.CertFile, ShouldEqual, "/etc/cubenet/server.crt")
		So(c.Server.KeepAlive, ShouldEqual, 30*time.Second)
		So(c.Reactor.WaitTimeout, ShouldEqual, 250*time.Millisecond)
		So(c.Reactor.BatchSize, ShouldEqual, 128)
		So(c.Codec.Obfuscate, ShouldBeTrue)
		So(c.Log.Level, ShouldEqual, "debug")

		Convey("and the environment overrides the file", func() {
			t.Setenv("CUBENET_SERVER_PORT", "9200")
			t.Setenv("CUBENET_LOG_LEVEL", "warn")
			c, err := LoadConfig(path)
			So(err, ShouldBeNil)
			So(c.Server.Port, ShouldEqual, 9200)
			So(c.Log.Level, ShouldEqual, "warn")
		})
	})

	Convey("A missing file is an error", t, func() {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		So(err, ShouldNotBeNil)
	})
}
