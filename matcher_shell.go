package aclhelper

import (
	"path"
	"strings"
)

// shellDriver backs the match/imatch checker drivers: shell-style
// glob patterns (*, ?, [...]) evaluated with path.Match, the only
// glob implementation available without reaching for an unvetted
// dependency.
type shellDriver struct {
	icase bool
	index *Container[string, string]
}

func newShellDriver(icase bool) *shellDriver {
	return &shellDriver{icase: icase, index: NewContainer[string, string]()}
}

func (d *shellDriver) Build(records []string) error {
	for _, pattern := range records {
		d.index.AppendLinear(pattern, pattern)
	}
	return nil
}

func (d *shellDriver) Match(token string) (string, bool) {
	needle := token
	if d.icase {
		needle = strings.ToLower(needle)
	}
	_, ok := d.index.ScanLinear(func(pattern, _ string) bool {
		p := pattern
		if d.icase {
			p = strings.ToLower(p)
		}
		ok, err := path.Match(p, needle)
		return err == nil && ok
	})
	return "", ok
}
