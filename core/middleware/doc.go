// Package middleware groups the HTTP middleware used by the status API:
// ray-id assignment for log correlation and API-key authentication for
// mutating endpoints.
package middleware
