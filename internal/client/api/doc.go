// Package api is the typed client for the docshelf REST API. It performs the
// HTTP calls, attaches bearer credentials, and normalizes the server's
// response envelopes into stable shapes so that no ambiguity about payload
// wrapping leaks past this boundary.
//
// Error taxonomy (matched with errors.Is):
//   - ErrUnauthenticated: HTTP 401; local credentials are cleared and the
//     registered logout hook fires. Never retried.
//   - context.Canceled / context.DeadlineExceeded: the caller abandoned the
//     request; treated as a no-op, never shown to the user.
//   - ErrUnreachable: transport-level failure.
//   - *APIError: any other non-2xx, carrying the server's message.
package api
