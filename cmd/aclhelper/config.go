package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Config holds every setting read from the helper's configuration
// file: global runtime options, plus the raw source/options/checker
// declarations in the order they appeared, handed to buildComponents() once
// parsing is done.
type Config struct {
	Debug         int
	Concurrency   int
	User          string
	Group         string
	PIDFile       string
	LogKind       string // "file" or "syslog"
	LogIdent      string
	LogTarget     string // path for file, facility for syslog
	SSLCAFile     string
	SSLTimeout    int
	SSLVerifyTTL  int
	ResolveServer string
	ResolveTTL    int
	ResolveNegTTL int
	GeoIPDBFile   string

	Sources  []RawSource
	Options  []RawOptionScope
	Checkers []RawChecker
}

// RawSource is one unparsed `source = name:kind:params` line.
type RawSource struct {
	Name   string
	Kind   string
	Fields []string
}

// RawOptionScope is one unparsed `options = name:source_name:source_filter` line.
type RawOptionScope struct {
	Name       string
	SourceName string
	Filter     string
}

// RawChecker is one unparsed `checker = name:enable:idx:driver:action:notes:source:source_filter` line.
// Fields other than Name are kept as raw strings since %{...}
// substitution runs against them before they're parsed into typed
// values.
type RawChecker struct {
	Name       string
	Enable     string
	FieldIdx   string
	Driver     string
	Action     string
	Notes      string
	SourceName string
	Filter     string
}

func defaultConfig() *Config {
	return &Config{
		Concurrency:   10,
		ResolveServer: "127.0.0.1:53",
		SSLTimeout:    10,
		SSLVerifyTTL:  3600,
		ResolveTTL:    3600,
		ResolveNegTTL: 60,
	}
}

// LoadConfig reads and parses the configuration file at path.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening configuration file")
	}
	defer f.Close()

	cfg := defaultConfig()
	lineNo := 0
	var pending string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if strings.HasSuffix(line, `\`) {
			pending += strings.TrimSuffix(line, `\`)
			continue
		}
		line = pending + line
		pending = ""

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, val, ok := strings.Cut(line, "=")
		if !ok {
			return nil, errors.Errorf("line %d: missing '=' in %q", lineNo, line)
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		if err := cfg.applyKey(key, val); err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading configuration file")
	}
	if pending != "" {
		return nil, errors.New("configuration file ends with a dangling line continuation")
	}
	return cfg, nil
}

func (c *Config) applyKey(key, val string) error {
	switch key {
	case "debug":
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 || n > 10 {
			return fmt.Errorf("debug must be 0..10, got %q", val)
		}
		c.Debug = n
	case "concurrency":
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 || n > 255 {
			return fmt.Errorf("concurrency must be 0..255, got %q", val)
		}
		c.Concurrency = n
	case "pidfile":
		c.PIDFile = val
	case "user":
		c.User = val
	case "group":
		c.Group = val
	case "log":
		parts := strings.SplitN(val, ":", 3)
		if len(parts) != 3 {
			return fmt.Errorf("log requires kind:ident:target, got %q", val)
		}
		if parts[0] != "file" && parts[0] != "syslog" {
			return fmt.Errorf("unknown log kind %q", parts[0])
		}
		c.LogKind, c.LogIdent, c.LogTarget = parts[0], parts[1], parts[2]
	case "ssl_ca_file":
		c.SSLCAFile = val
	case "ssl_timeout":
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 || n > 3600 {
			return fmt.Errorf("ssl_timeout must be 0..3600, got %q", val)
		}
		c.SSLTimeout = n
	case "ssl_verify_ttl":
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 || n > 604800 {
			return fmt.Errorf("ssl_verify_ttl must be 0..604800, got %q", val)
		}
		c.SSLVerifyTTL = n
	case "resolve_ttl":
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 || n > 604800 {
			return fmt.Errorf("resolve_ttl must be 0..604800, got %q", val)
		}
		c.ResolveTTL = n
	case "resolve_neg_ttl":
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 || n > 604800 {
			return fmt.Errorf("resolve_neg_ttl must be 0..604800, got %q", val)
		}
		c.ResolveNegTTL = n
	case "geoip2_db":
		c.GeoIPDBFile = val
	case "source":
		parts := strings.SplitN(val, ":", 3)
		if len(parts) < 2 {
			return fmt.Errorf("source requires name:kind[:params], got %q", val)
		}
		src := RawSource{Name: parts[0], Kind: parts[1]}
		if len(parts) == 3 {
			src.Fields = strings.Split(parts[2], ":")
		}
		c.Sources = append(c.Sources, src)
	case "options":
		parts := strings.SplitN(val, ":", 3)
		if len(parts) < 2 {
			return fmt.Errorf("options requires name:source_name[:source_filter], got %q", val)
		}
		scope := RawOptionScope{Name: parts[0], SourceName: parts[1]}
		if len(parts) == 3 {
			scope.Filter = parts[2]
		}
		c.Options = append(c.Options, scope)
	case "checker":
		parts := strings.SplitN(val, ":", 8)
		if len(parts) != 8 {
			return fmt.Errorf("checker requires 8 colon-delimited fields, got %q", val)
		}
		c.Checkers = append(c.Checkers, RawChecker{
			Name:       parts[0],
			Enable:     parts[1],
			FieldIdx:   parts[2],
			Driver:     parts[3],
			Action:     parts[4],
			Notes:      parts[5],
			SourceName: parts[6],
			Filter:     parts[7],
		})
	default:
		return fmt.Errorf("unknown configuration key %q", key)
	}
	return nil
}
