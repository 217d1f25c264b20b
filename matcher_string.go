package aclhelper

import "strings"

// stringDriver backs the string/istring checker drivers: exact
// match against a fixed record set, case-sensitive or not.
type stringDriver struct {
	icase bool
	index *Container[string, struct{}]
}

func newStringDriver(icase bool) *stringDriver {
	return &stringDriver{icase: icase, index: NewContainer[string, struct{}]()}
}

func (d *stringDriver) key(s string) string {
	if d.icase {
		return strings.ToLower(s)
	}
	return s
}

func (d *stringDriver) Build(records []string) error {
	for _, rec := range records {
		d.index.Insert(d.key(rec), struct{}{})
	}
	return nil
}

func (d *stringDriver) Match(token string) (string, bool) {
	_, ok := d.index.Find(d.key(token))
	return "", ok
}
