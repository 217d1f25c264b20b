package aclhelper

// resolveDriver backs the resolve checker driver: records are a set
// of known-good IP addresses, and the request token is a hostname
// resolved at match time. The check passes if any resolved address
// is in the configured set.
type resolveDriver struct {
	resolver *Resolver
	ips      *ipDriver
}

func newResolveDriver(resolver *Resolver) *resolveDriver {
	return &resolveDriver{resolver: resolver, ips: newIPDriver()}
}

func (d *resolveDriver) Build(records []string) error {
	return d.ips.Build(records)
}

func (d *resolveDriver) Match(token string) (string, bool) {
	addrs, err := d.resolver.Resolve(token)
	if err != nil {
		return "", false
	}
	for _, addr := range addrs {
		if note, ok := d.ips.Match(addr); ok {
			return note, true
		}
	}
	return "", false
}

// dresolveDriver backs the dresolve checker driver: records are a
// set of hostnames, and the request token is a client IP. Each
// configured hostname is resolved (through the shared resolver's
// own cache) and compared against the token, matching the reference
// implementation's per-query re-resolution of stored records rather
// than resolving once at load time.
type dresolveDriver struct {
	resolver  *Resolver
	hostnames []string
}

func newDresolveDriver(resolver *Resolver) *dresolveDriver {
	return &dresolveDriver{resolver: resolver}
}

func (d *dresolveDriver) Build(records []string) error {
	d.hostnames = append(d.hostnames, records...)
	return nil
}

func (d *dresolveDriver) Match(token string) (string, bool) {
	for _, host := range d.hostnames {
		addrs, err := d.resolver.Resolve(host)
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			if addr == token {
				return "", true
			}
		}
	}
	return "", false
}
