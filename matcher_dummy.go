package aclhelper

// dummyDriver unconditionally matches every token. Used for
// catch-all chain entries, grounded on the reference
// implementation's single static "DUMMY" sentinel record that every
// query is compared against and always matches.
type dummyDriver struct{}

func newDummyDriver() *dummyDriver { return &dummyDriver{} }

func (d *dummyDriver) Build(_ []string) error      { return nil }
func (d *dummyDriver) Match(_ string) (string, bool) { return "", true }
