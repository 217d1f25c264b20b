package aclhelper

import "regexp"

// regexDriver backs the regex/iregex/pcre/ipcre checker drivers.
// regex/iregex compile with regexp.CompilePOSIX for its
// leftmost-longest match semantics; pcre/ipcre compile with the
// default RE2 engine, since no PCRE binding - cgo or pure-Go -
// turned up anywhere in the reference sources, and fabricating one
// isn't an option. pcre/ipcre patterns are anchored at the start of
// the token, like PCRE's ANCHORED option.
type regexDriver struct {
	posix bool
	icase bool
	index *Container[string, *regexp.Regexp]
}

func newRegexDriver(posix, icase bool) *regexDriver {
	return &regexDriver{posix: posix, icase: icase, index: NewContainer[string, *regexp.Regexp]()}
}

func (d *regexDriver) Build(records []string) error {
	for _, pattern := range records {
		p := pattern
		if !d.posix {
			p = "^(?:" + p + ")"
		}
		if d.icase {
			p = "(?i)" + p
		}
		var re *regexp.Regexp
		var err error
		if d.posix {
			re, err = regexp.CompilePOSIX(p)
		} else {
			re, err = regexp.Compile(p)
		}
		if err != nil {
			Log.WithField("pattern", pattern).WithError(err).Warn("skipping unparsable regex record")
			continue
		}
		d.index.AppendLinear(pattern, re)
	}
	return nil
}

func (d *regexDriver) Match(token string) (string, bool) {
	_, ok := d.index.ScanLinear(func(_ string, re *regexp.Regexp) bool {
		return re.MatchString(token)
	})
	return "", ok
}
