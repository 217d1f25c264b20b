/*
Package aclhelper implements the match pipeline for an external ACL
helper for a caching HTTP proxy, modeled on Squid's external_acl_type
protocol.

Checkers

A Checker is one rule in an ordered policy chain. Each checker pulls
records from a Source, compiles them with a matching driver into an
index, and at request time matches one token of the incoming request
against that index. A match accumulates notes and may terminate the
chain early depending on the checker's configured action (HIT, MISS,
or NOTE).

Sources

A Source produces newline-delimited record text from one of several
backends: an inline list, a file (with an optional filter), or a SQL
query against SQLite or PostgreSQL.

Option scopes

Option scopes load key=value data from a Source and make it available
to late-bound %{scope&name|default} substitution inside checker
configuration.

Drivers

Matching drivers implement the actual comparison: exact string,
shell glob, POSIX regex, PCRE-style anchored regex, IP/CIDR, forward
and reverse DNS set membership, GeoIP2 location, and TLS certificate
verification.

The command that wires these into a running process - reading
configuration, handling signals and privilege drop, and running the
request loop against stdin/stdout - lives in ./cmd/aclhelper.
*/
package aclhelper
