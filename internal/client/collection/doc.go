// Package collection keeps a view of the remote attachment collection
// consistent under concurrent user-driven parameter changes.
//
// Query is the complete description of the wanted subset (page, page size,
// sort, search, folder scope). Controller owns the single source of truth for
// what should be displayed and guarantees last-query-wins semantics: each
// parameter change retires the previous in-flight request, and a response is
// committed only if its generation is still the current one, regardless of
// network completion order. Stale responses are dropped silently even when
// the transport-level cancellation races and the response still arrives.
package collection
