package aclhelper

import (
	"fmt"
	"time"
)

// NewDriver constructs the matching driver named by kind, as
// configured in a checker's `driver=` field: string, istring,
// match, imatch, regex, iregex, pcre, ipcre, ip, resolve, dresolve,
// ssl, geoip2, or dummy.
func NewDriver(kind string, cfg DriverConfig, resolver *Resolver, locator *GeoIPLocator) (Driver, error) {
	switch kind {
	case "string":
		return newStringDriver(false), nil
	case "istring":
		return newStringDriver(true), nil
	case "match":
		return newShellDriver(false), nil
	case "imatch":
		return newShellDriver(true), nil
	case "regex":
		return newRegexDriver(true, false), nil
	case "iregex":
		return newRegexDriver(true, true), nil
	case "pcre":
		return newRegexDriver(false, false), nil
	case "ipcre":
		return newRegexDriver(false, true), nil
	case "ip":
		return newIPDriver(), nil
	case "resolve":
		if resolver == nil {
			return nil, fmt.Errorf("resolve driver requires a resolver")
		}
		return newResolveDriver(resolver), nil
	case "dresolve":
		if resolver == nil {
			return nil, fmt.Errorf("dresolve driver requires a resolver")
		}
		return newDresolveDriver(resolver), nil
	case "ssl":
		opt := SSLProbeOptions{
			Timeout: time.Duration(cfg.SSLTimeout) * time.Second,
			CAFile:  cfg.SSLCAFile,
		}
		return newSSLDriver(opt, time.Duration(cfg.SSLVerifyTTL)*time.Second), nil
	case "geoip2":
		if locator == nil {
			return nil, fmt.Errorf("geoip2 driver requires a geoip2 database")
		}
		return newGeoIPDriver(locator), nil
	case "dummy":
		return newDummyDriver(), nil
	default:
		return nil, fmt.Errorf("unknown checker driver %q", kind)
	}
}
