// Package fathom provides a client for the Fathom external API.
//
// The client handles the quirks of the upstream endpoints:
//   - Cursor-based pagination over /meetings, where a page body is either a
//     bare JSON array or an object carrying the items under one of several
//     wrapper keys
//   - A minimum inter-request spacing enforced by a Limiter, because the
//     provider's documented rate limit has proven optimistic in practice
//   - Per-request retry with exponential backoff for transient transport
//     failures, a long fixed sleep on HTTP 429, and no retry at all for
//     terminal HTTP statuses such as 404 or 410
//
// Failure kinds are distinguishable by the caller: terminal HTTP statuses
// surface as *HTTPError, exhausted retry budgets wrap ErrRetriesExhausted,
// and a successful response with an empty transcript is not an error.
package fathom
