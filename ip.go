package aclhelper

import (
	"encoding/binary"
	"net"
	"strconv"
	"strings"
)

// ipRecord is a parsed "address[/net]" token: the address itself,
// its netmask, and the address pre-masked by that netmask. Both
// checker records and request tokens are parsed into this form.
type ipRecord struct {
	ip, net, ipnet uint32
}

// parseIPNet parses tok the way the reference implementation's
// str2ipaddr does: the network part after '/' may be a prefix
// length of one or two digits ("24"), a dotted netmask
// ("255.255.255.0"), or absent, which defaults to /32.
func parseIPNet(tok string) (ipRecord, bool) {
	addrPart, netPart, hasNet := strings.Cut(tok, "/")

	addr := net.ParseIP(addrPart)
	if addr == nil {
		return ipRecord{}, false
	}
	ip4 := addr.To4()
	if ip4 == nil {
		return ipRecord{}, false
	}
	ipVal := binary.BigEndian.Uint32(ip4)

	netmask := uint32(0xFFFFFFFF)
	if hasNet && netPart != "" {
		switch {
		case len(netPart) <= 2:
			n, err := strconv.Atoi(netPart)
			if err != nil || n < 0 || n > 32 {
				return ipRecord{}, false
			}
			if n == 0 {
				netmask = 0
			} else {
				netmask = 0xFFFFFFFF << uint(32-n)
			}
		default:
			nm := net.ParseIP(netPart)
			if nm == nil {
				return ipRecord{}, false
			}
			nm4 := nm.To4()
			if nm4 == nil {
				return ipRecord{}, false
			}
			netmask = binary.BigEndian.Uint32(nm4)
		}
	}

	return ipRecord{ip: ipVal, net: netmask, ipnet: ipVal & netmask}, true
}

// matchIP reports whether query (typically a bare address with an
// implied /32) falls within rec's network: the query address is
// masked with rec's netmask and compared with rec's masked address.
// The driver always computes ipnet from ip & net at parse time, so a
// bare address record naturally carries ipnet == ip. The reference
// comparator's "if (!ipnet2) ipnet2 = ip_s & net_q" fallback applies
// only when rec's masked address is 0 (the zero address, or a
// netmask that clears every bit of the address), and is preserved
// here for fidelity even though it's a degenerate case.
func matchIP(query, rec ipRecord) bool {
	ipnet2 := rec.ipnet
	if ipnet2 == 0 {
		ipnet2 = rec.ip & query.net
	}
	return ipnet2 == query.ip&rec.net
}
