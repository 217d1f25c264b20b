package aclhelper

import (
	"crypto/tls"
	"fmt"
	"net"
	"time"
)

// SSLProbeOptions configures outbound TLS probes: how long to wait
// for the handshake, and an optional custom CA bundle to verify the
// peer certificate against.
type SSLProbeOptions struct {
	Timeout time.Duration
	CAFile  string
}

// ProbeTLS resolves host, connects to host:port within the
// configured timeout, and performs a TLS handshake with the given
// SNI. It returns nil if the peer's certificate chain verifies, or
// the verification error otherwise - mirroring ssl_verify_host's
// "0 means valid, anything else is the failure reason" contract,
// just expressed as a Go error instead of an OpenSSL result code.
func ProbeTLS(host string, port int, opt SSLProbeOptions) error {
	addrs, err := net.LookupHost(host)
	if err != nil || len(addrs) == 0 {
		return &ProbeError{Host: host, Port: port, Err: fmt.Errorf("could not resolve host")}
	}

	timeout := opt.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	conn, err := net.DialTimeout("tcp", net.JoinHostPort(addrs[0], fmt.Sprint(port)), timeout)
	if err != nil {
		return &ProbeError{Host: host, Port: port, Err: err}
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(timeout))

	tlsConfig, err := TLSClientConfig(opt.CAFile, host)
	if err != nil {
		return &ProbeError{Host: host, Port: port, Err: err}
	}

	tlsConn := tls.Client(conn, tlsConfig)
	defer tlsConn.Close()
	if err := tlsConn.Handshake(); err != nil {
		return &ProbeError{Host: host, Port: port, Err: err}
	}
	return nil
}
