package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "acl-helper.conf")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigParsesGlobalSettings(t *testing.T) {
	path := writeConfig(t, `
# a comment
debug = 3
concurrency = 20
pidfile = /var/run/aclhelper.pid
user = nobody
group = nogroup
ssl_ca_file = /etc/ssl/cacert.pem
ssl_timeout = 5
ssl_verify_ttl = 120
resolve_ttl = 300
resolve_neg_ttl = 30
geoip2_db = /etc/aclhelper/geoip2.mmdb
log = syslog:aclhelper:local0
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Debug)
	assert.Equal(t, 20, cfg.Concurrency)
	assert.Equal(t, "/var/run/aclhelper.pid", cfg.PIDFile)
	assert.Equal(t, "nobody", cfg.User)
	assert.Equal(t, "nogroup", cfg.Group)
	assert.Equal(t, "/etc/ssl/cacert.pem", cfg.SSLCAFile)
	assert.Equal(t, 5, cfg.SSLTimeout)
	assert.Equal(t, 120, cfg.SSLVerifyTTL)
	assert.Equal(t, 300, cfg.ResolveTTL)
	assert.Equal(t, 30, cfg.ResolveNegTTL)
	assert.Equal(t, "/etc/aclhelper/geoip2.mmdb", cfg.GeoIPDBFile)
	assert.Equal(t, "syslog", cfg.LogKind)
	assert.Equal(t, "aclhelper", cfg.LogIdent)
	assert.Equal(t, "local0", cfg.LogTarget)
}

func TestLoadConfigParsesSourceOptionsAndChecker(t *testing.T) {
	path := writeConfig(t, `
source = src:raw:ceo.example,cfo.example
options = sys:src:min_.*
checker = block:on:1:string:miss::src:
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, RawSource{Name: "src", Kind: "raw", Fields: []string{"ceo.example,cfo.example"}}, cfg.Sources[0])

	require.Len(t, cfg.Options, 1)
	assert.Equal(t, RawOptionScope{Name: "sys", SourceName: "src", Filter: "min_.*"}, cfg.Options[0])

	require.Len(t, cfg.Checkers, 1)
	assert.Equal(t, RawChecker{
		Name: "block", Enable: "on", FieldIdx: "1", Driver: "string",
		Action: "miss", Notes: "", SourceName: "src", Filter: "",
	}, cfg.Checkers[0])
}

func TestLoadConfigJoinsBackslashContinuedLines(t *testing.T) {
	path := writeConfig(t, "source = src:raw:one,\\\ntwo,three\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, []string{"one,two,three"}, cfg.Sources[0].Fields)
}

func TestLoadConfigRejectsOutOfRangeConcurrency(t *testing.T) {
	path := writeConfig(t, "concurrency = 999\n")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsMalformedChecker(t *testing.T) {
	path := writeConfig(t, "checker = block:on:1:string:miss:\n")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, "bogus = value\n")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.conf"))
	assert.Error(t, err)
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "debug = 0\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Concurrency)
	assert.Equal(t, "127.0.0.1:53", cfg.ResolveServer)
}
