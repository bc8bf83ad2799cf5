// Package common contains shared constants and sentinel errors used across
// the inventory client and the development API server.
package common

// AuthorizationHeaderName carries the bearer token on protected requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the Authorization header value.
const BearerPrefix = "Bearer "

// RequestIDHeaderName correlates a client request with server logs.
const RequestIDHeaderName = "X-Request-ID"

// Storage keys for the persisted session.
const (
	SessionTokenKey = "hackerspace_token"
	SessionUserKey  = "hackerspace_user"
)

// DefaultTagColor is used when a tag is created without a color.
const DefaultTagColor = "#000000"
