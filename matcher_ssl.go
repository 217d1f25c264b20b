package aclhelper

import (
	"fmt"
	"strconv"
	"time"
)

// sslDriver backs the `ssl` checker driver. It is not a match in the
// usual sense: it always hits as long as the probe returned, and
// carries the verbatim verification result (0 = valid, -1 = could
// not resolve/connect/handshake) as the annotation `ssl_error=<N>`.
// The token is the hostname; the port comes from the token
// immediately after it in the request, defaulting to 443 when there
// isn't one. Results are cached by "host:port" for verifyTTL, since a
// handshake is expensive to repeat on every request for the same
// destination.
type sslDriver struct {
	opt       SSLProbeOptions
	verifyTTL time.Duration
	cache     *ttlCache[string, int]
}

var _ TokenContextDriver = (*sslDriver)(nil)

func newSSLDriver(opt SSLProbeOptions, verifyTTL time.Duration) *sslDriver {
	return &sslDriver{opt: opt, verifyTTL: verifyTTL, cache: newTTLCache[string, int]()}
}

// Build is a no-op: the ssl driver has no static record set, it
// probes live addresses supplied as request tokens.
func (d *sslDriver) Build(_ []string) error { return nil }

// Match probes with no adjacent port token available, so it always
// falls back to the default port 443.
func (d *sslDriver) Match(token string) (string, bool) {
	return d.MatchTokens([]string{token}, 0)
}

// MatchTokens reads the port from tokens[idx+1] when present.
func (d *sslDriver) MatchTokens(tokens []string, idx int) (string, bool) {
	host := tokens[idx]
	port := 443
	if idx+1 < len(tokens) {
		if p, err := strconv.Atoi(tokens[idx+1]); err == nil {
			port = p
		}
	}

	key := fmt.Sprintf("%s:%d", host, port)
	if code, ok := d.cache.Get(key); ok {
		return fmt.Sprintf("ssl_error=%d", code), true
	}

	code := 0
	if err := ProbeTLS(host, port, d.opt); err != nil {
		code = -1
	}
	d.cache.Set(key, code, d.verifyTTL)
	return fmt.Sprintf("ssl_error=%d", code), true
}
