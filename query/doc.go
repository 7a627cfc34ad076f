// Package query composes untrusted listing parameters into a deterministic
// database query.
//
// The composer is a small intermediate representation rather than an opaque
// builder: Criteria holds the parsed search text, status filter and sort
// key, and compiles them on demand into WHERE / ORDER BY fragments. Because
// the count pass and the fetch pass both compile from the same Criteria
// value, the two passes are guaranteed to agree on the predicate within a
// request.
//
//	crit := query.Parse(search, status, sort)
//	where, args := crit.Where()
//	order := crit.OrderBy()
//
// Parsing never fails: unknown status or sort values fall back to the
// defaults, so user-supplied query strings cannot break the listing page.
package query
