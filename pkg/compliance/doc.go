// Package compliance evaluates a completed HazOps analysis against
// regulatory clause catalogs (IEC 61511, ISO 31000, OSHA PSM) and produces
// per-standard summaries, full audit reports, and gap lists.
//
// Every function in this package is a pure transform over the entries it is
// handed: no caching, no shared mutable state, no I/O. Given the same
// entries, standards, and options, results are identical apart from the
// report ID and generation timestamp. The clause Registry is built once and
// read-only thereafter, so concurrent callers need no coordination.
package compliance
