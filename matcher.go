package aclhelper

// Driver implements one matching algorithm for a Checker. Build
// compiles a checker's Source records into whatever index the
// driver needs; Match tests a single request token against that
// index and reports whether it matched, plus an optional note to
// fold into the checker chain's accumulated message on a hit.
type Driver interface {
	Build(records []string) error
	Match(token string) (note string, matched bool)
}

// TokenContextDriver is implemented by drivers that need more than
// the one token at their configured field index - currently only
// `ssl`, whose port comes from the token immediately after the
// matched field. The checker chain prefers this interface over
// Driver.Match when a driver implements both.
type TokenContextDriver interface {
	MatchTokens(tokens []string, idx int) (note string, matched bool)
}

// DriverConfig carries settings a handful of drivers need beyond
// their record list. Fields unrelated to a given driver are ignored;
// the checker chain builder fills this in once from the parsed
// configuration file and passes it to every driver constructor.
type DriverConfig struct {
	SSLCAFile     string
	SSLTimeout    int
	SSLVerifyTTL  int
	GeoIPDBFile   string
	ResolveServer string
	ResolveTTL    int
	ResolveNegTTL int
}
