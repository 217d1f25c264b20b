package aclhelper

import "fmt"

// Source produces newline-delimited record text for a checker or
// option scope to load. Load is called once at startup and again on
// every SIGHUP-triggered reconfiguration; a Source does not need to
// watch its backend for changes itself.
type Source interface {
	Load() ([]string, error)
}

// NewSource builds a Source from a `source =` configuration line's
// kind and its remaining fields, dispatching on kind the same way
// the reference implementation's source_config does.
func NewSource(kind string, fields []string) (Source, error) {
	switch kind {
	case "raw":
		return newRawSource(fields), nil
	case "file":
		return newFileSource(fields)
	case "sqlite3":
		return newSQLSource("sqlite", fields)
	case "pgsql":
		return newSQLSource("pgx", fields)
	case "memcached":
		return newMemcachedSource(), nil
	case "dummy":
		return newDummySource(), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", kind)
	}
}

type rawSource struct {
	items []string
}

func newRawSource(fields []string) *rawSource {
	var items []string
	if len(fields) > 0 {
		for _, item := range splitNonEmpty(fields[0], ",") {
			items = append(items, item)
		}
	}
	return &rawSource{items: items}
}

func (s *rawSource) Load() ([]string, error) {
	return s.items, nil
}

// dummySource always yields an empty record set, for checkers
// configured with source=dummy alongside the dummy matching driver.
type dummySource struct{}

func newDummySource() *dummySource { return &dummySource{} }

func (s *dummySource) Load() ([]string, error) { return nil, nil }

// memcachedSource is an intentional stub: the reference
// implementation's memcached backend is compiled out by default and
// never implemented, and there is no maintained Go memcached client
// among the reference dependencies to ground one on.
type memcachedSource struct{}

func newMemcachedSource() *memcachedSource { return &memcachedSource{} }

func (s *memcachedSource) Load() ([]string, error) {
	return nil, fmt.Errorf("memcached source is not supported")
}
