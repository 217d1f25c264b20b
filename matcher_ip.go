package aclhelper

// ipDriver backs the ip checker driver: exact network membership,
// compared against a set of address/netmask records.
type ipDriver struct {
	index *Container[string, ipRecord]
}

func newIPDriver() *ipDriver {
	return &ipDriver{index: NewContainer[string, ipRecord]()}
}

func (d *ipDriver) Build(records []string) error {
	for _, rec := range records {
		parsed, ok := parseIPNet(rec)
		if !ok {
			Log.WithField("record", rec).Warn("skipping unparsable ip record")
			continue
		}
		d.index.AppendLinear(rec, parsed)
	}
	return nil
}

func (d *ipDriver) Match(token string) (string, bool) {
	query, ok := parseIPNet(token)
	if !ok {
		return "", false
	}
	_, found := d.index.ScanLinear(func(_ string, rec ipRecord) bool {
		return matchIP(query, rec)
	})
	return "", found
}
