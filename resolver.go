package aclhelper

import (
	"fmt"
	"time"

	"github.com/miekg/dns"
)

// Resolver resolves hostnames to IPv4 addresses for the resolve and
// dresolve matching drivers, caching both positive and negative
// results the way the reference implementation's ip_cache does:
// a successful lookup is kept for resolveTTL seconds, a failed one
// for resolveNegTTL seconds so a flapping or unregistered name
// doesn't cause a DNS query on every request.
type Resolver struct {
	client *dns.Client
	server string
	posTTL time.Duration
	negTTL time.Duration
	cache  *ttlCache[string, []string]
}

// NewResolver builds a Resolver that queries server (host:port, e.g.
// "127.0.0.1:53") for A records.
func NewResolver(server string, resolveTTL, resolveNegTTL int) *Resolver {
	return &Resolver{
		client: &dns.Client{Timeout: 5 * time.Second},
		server: server,
		posTTL: time.Duration(resolveTTL) * time.Second,
		negTTL: time.Duration(resolveNegTTL) * time.Second,
		cache:  newTTLCache[string, []string](),
	}
}

// Resolve returns the cached or freshly looked-up set of IPv4
// addresses for host. A cached negative result returns an
// UnresolvedHostError without making a query.
func (r *Resolver) Resolve(host string) ([]string, error) {
	if ips, ok := r.cache.Get(host); ok {
		if len(ips) == 0 {
			return nil, &UnresolvedHostError{Host: host}
		}
		return ips, nil
	}

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(host), dns.TypeA)
	in, _, err := r.client.Exchange(m, r.server)
	if err != nil || in == nil {
		r.cache.Set(host, nil, r.negTTL)
		return nil, &UnresolvedHostError{Host: host}
	}

	var ips []string
	for _, rr := range in.Answer {
		if a, ok := rr.(*dns.A); ok {
			ips = append(ips, a.A.String())
		}
	}
	if len(ips) == 0 {
		r.cache.Set(host, nil, r.negTTL)
		return nil, &UnresolvedHostError{Host: host}
	}
	r.cache.Set(host, ips, r.posTTL)
	return ips, nil
}

func (r *Resolver) String() string {
	return fmt.Sprintf("resolver(%s)", r.server)
}
