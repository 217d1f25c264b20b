package aclhelper

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// fileSource reads records from a local file, one per line, with an
// optional case-insensitive POSIX ERE filter. Grounded on the
// reference implementation's source_from_file, which strips
// carriage returns from each line and skips any that don't match
// the configured filter.
type fileSource struct {
	path   string
	filter *regexp.Regexp
}

func newFileSource(fields []string) (*fileSource, error) {
	if len(fields) < 1 || fields[0] == "" {
		return nil, fmt.Errorf("file source requires a path")
	}
	fs := &fileSource{path: fields[0]}
	if len(fields) > 1 && fields[1] != "" {
		re, err := regexp.CompilePOSIX("(?i)" + fields[1])
		if err != nil {
			return nil, fmt.Errorf("bad file source filter: %w", err)
		}
		fs.filter = re
	}
	return fs, nil
}

func (s *fileSource) Load() ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if s.filter != nil && !s.filter.MatchString(line) {
			continue
		}
		records = append(records, line)
	}
	return records, scanner.Err()
}
