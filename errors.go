package aclhelper

import "fmt"

// BadRecordError describes a record that is malformed enough to skip
// rather than fail the whole checker. No Source or matching driver in
// this package returns it: the drivers log such records and skip
// them, and only structural errors (bad driver name, missing source)
// disable a checker outright.
type BadRecordError struct {
	Record string
	Reason string
}

func (e *BadRecordError) Error() string {
	return fmt.Sprintf("bad record %q: %s", e.Record, e.Reason)
}

// UnresolvedHostError is returned by the resolver when a hostname
// cannot be resolved to any address, including the case where a
// negative result is already cached.
type UnresolvedHostError struct {
	Host string
}

func (e *UnresolvedHostError) Error() string {
	return fmt.Sprintf("could not resolve %q", e.Host)
}

// ProbeError wraps a failure encountered while probing a remote TLS
// endpoint: DNS resolution, connect, or handshake.
type ProbeError struct {
	Host string
	Port int
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("tls probe of %s:%d failed: %v", e.Host, e.Port, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }
