package aclhelper

import (
	"fmt"
	"net"
)

// geoipDriver backs the geoip2 checker driver. It looks up the
// client IP carried in the request token and always hits, carrying
// the continent/country/city annotation; the checker's configured
// source plays no role in the match (the original keeps it only for
// parity with every other driver's configuration shape). A lookup
// that fails for any reason reports the "N/A" triple rather than a
// non-match. Results are cached by token text forever, since a
// location-to-IP mapping doesn't change fast enough to expire.
type geoipDriver struct {
	locator *GeoIPLocator
	cache   *ttlCache[string, string]
}

func newGeoIPDriver(locator *GeoIPLocator) *geoipDriver {
	return &geoipDriver{locator: locator, cache: newTTLCache[string, string]()}
}

func (d *geoipDriver) Build(_ []string) error { return nil }

func (d *geoipDriver) Match(token string) (string, bool) {
	if note, ok := d.cache.Get(token); ok {
		return note, true
	}

	continent, country, city := "N/A", "N/A", "N/A"
	if ip := net.ParseIP(token); ip != nil {
		continent, country, city = d.locator.Lookup(ip)
	}

	note := fmt.Sprintf("geoip2_continent='%s' geoip2_country='%s' geoip2_city='%s'", continent, country, city)
	d.cache.SetForever(token, note)
	return note, true
}
