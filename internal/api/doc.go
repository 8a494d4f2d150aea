// Package api provides an HTTP client for the content service.
//
// # Overview
//
// The client covers the card and profile endpoints: listing, creating,
// deleting, and (un)liking cards, plus reading and updating the profile and
// avatar. Responses decode into the types in types.go; the server's card is
// always authoritative, so callers replace their copies wholesale rather
// than merging.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Send the configured Authorization header verbatim
//   - Set Content-Type: application/json
//   - Have a 10-second timeout (via http.Client)
//   - Are single best-effort attempts: no retries, no caching
//
// # Error Handling
//
// Two failure shapes reach callers:
//   - *StatusError for any non-2xx response, carrying the HTTP status code.
//     The body is not read on failure.
//   - Wrapped transport errors ("execute request: …") when the request
//     never completed.
//
// # Thread Safety
//
// The Client struct is safe for concurrent use. The underlying http.Client
// handles connection pooling and concurrent requests internally.
package api
