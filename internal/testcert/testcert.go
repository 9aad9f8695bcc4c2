// Package testcert generates a throwaway CA and a server certificate valid
// for localhost, for tests that need real TLS.
package testcert

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

type key struct {
	key    *ecdsa.PrivateKey
	keyPEM []byte

	cert    *x509.Certificate
	certPEM []byte
}

func (k *key) genKey() (err error) {
	if k.key, err = ecdsa.GenerateKey(elliptic.P256(), rand.Reader); err != nil {
		return
	}
	der, err := x509.MarshalECPrivateKey(k.key)
	if err != nil {
		return
	}
	k.keyPEM = pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der})
	return
}

func (k *key) genCert(tmpl *x509.Certificate, parent *key) (err error) {
	k.cert = tmpl // self-signed passes itself as parent
	der, err := x509.CreateCertificate(rand.Reader, tmpl, parent.cert, &k.key.PublicKey, parent.key)
	if err != nil {
		return
	}
	if k.cert, err = x509.ParseCertificate(der); err != nil {
		return
	}
	k.certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	return
}

// Certs holds a CA and a server key pair signed by it.
type Certs struct {
	root   key
	server key

	// ServerPair is the server certificate for tls.Config.Certificates.
	ServerPair tls.Certificate
	// Pool trusts the generated CA.
	Pool *x509.CertPool
}

func New() (*Certs, error) {
	c := &Certs{}
	if err := c.root.genKey(); err != nil {
		return nil, errors.Wrap(err, "root key")
	}
	if err := c.server.genKey(); err != nil {
		return nil, errors.Wrap(err, "server key")
	}
	now := time.Now()
	rootTmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "root.cubenet.test", Organization: []string{"cubenet test CA"}},
		NotBefore:             now.Add(-time.Hour),
		NotAfter:              now.Add(time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
	}
	serverTmpl := &x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject:      pkix.Name{CommonName: "localhost", Organization: []string{"cubenet test server"}},
		NotBefore:    now.Add(-time.Hour),
		NotAfter:     now.Add(time.Hour),
		DNSNames:     []string{"localhost"},
		IPAddresses:  []net.IP{net.ParseIP("127.0.0.1"), net.ParseIP("::1")},
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	if err := c.root.genCert(rootTmpl, &c.root); err != nil {
		return nil, errors.Wrap(err, "root cert")
	}
	if err := c.server.genCert(serverTmpl, &c.root); err != nil {
		return nil, errors.Wrap(err, "server cert")
	}
	pair, err := tls.X509KeyPair(c.server.certPEM, c.server.keyPEM)
	if err != nil {
		return nil, errors.Wrap(err, "server key pair")
	}
	c.ServerPair = pair
	c.Pool = x509.NewCertPool()
	c.Pool.AddCert(c.root.cert)
	return c, nil
}

// ServerConfig returns a server side config presenting the server pair.
func (c *Certs) ServerConfig() *tls.Config {
	return &tls.Config{
		Certificates: []tls.Certificate{c.ServerPair},
		MinVersion:   tls.VersionTLS12,
	}
}

// ClientConfig returns a client side config trusting the generated CA.
func (c *Certs) ClientConfig() *tls.Config {
	return &tls.Config{
		RootCAs:    c.Pool,
		ServerName: "localhost",
		MinVersion: tls.VersionTLS12,
	}
}

// WriteFiles stores the server key and certificate as PEM files in dir.
func (c *Certs) WriteFiles(dir string) (keyFile, certFile string, err error) {
	keyFile = filepath.Join(dir, "server.key")
	certFile = filepath.Join(dir, "server.crt")
	if err = os.WriteFile(keyFile, c.server.keyPEM, 0600); err != nil {
		return "", "", errors.Wrap(err, "write key")
	}
	if err = os.WriteFile(certFile, c.server.certPEM, 0644); err != nil {
		return "", "", errors.Wrap(err, "write cert")
	}
	return keyFile, certFile, nil
}
