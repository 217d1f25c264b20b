package aclhelper

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/oschwald/maxminddb-golang"
)

// GeoIPLocator looks up the continent, country, and city for an
// address in a MaxMind GeoIP2 database. It's shared by every
// checker configured with the geoip2 driver; opening the database
// file is the expensive part, so one Locator is built per database
// path and reused.
type GeoIPLocator struct {
	db *maxminddb.Reader
}

type geoIPRecord struct {
	Continent struct {
		Code      string `maxminddb:"code"`
		GeoNameID uint   `maxminddb:"geoname_id"`
	} `maxminddb:"continent"`
	Country struct {
		ISOCode   string `maxminddb:"iso_code"`
		GeoNameID uint   `maxminddb:"geoname_id"`
	} `maxminddb:"country"`
	City struct {
		GeoNameID uint `maxminddb:"geoname_id"`
	} `maxminddb:"city"`
}

// OpenGeoIPLocator opens the MaxMind GeoIP2 database at path.
func OpenGeoIPLocator(path string) (*GeoIPLocator, error) {
	db, err := maxminddb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open geoip2 database: %w", err)
	}
	return &GeoIPLocator{db: db}, nil
}

func (g *GeoIPLocator) Close() error {
	return g.db.Close()
}

// Lookup returns the continent code, country code, and city geoname
// ID for ip. Each field defaults to "N/A" and the lookup never
// returns an error: a miss or a database error simply leaves every
// field at its default, matching the reference implementation's
// lookup() contract.
func (g *GeoIPLocator) Lookup(ip net.IP) (continent, country, city string) {
	continent, country, city = "N/A", "N/A", "N/A"

	var rec geoIPRecord
	if err := g.db.Lookup(ip, &rec); err != nil {
		return
	}
	if rec.Continent.Code != "" {
		continent = strings.ToUpper(rec.Continent.Code)
	}
	if rec.Country.ISOCode != "" {
		country = strings.ToUpper(rec.Country.ISOCode)
	}
	if rec.City.GeoNameID != 0 {
		city = strconv.FormatUint(uint64(rec.City.GeoNameID), 10)
	}
	return
}
