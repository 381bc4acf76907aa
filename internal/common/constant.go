package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header. The match
// is case-sensitive and includes the trailing space.
const BearerPrefix = "Bearer "

// RequestIDHeaderName carries the per-request correlation id.
const RequestIDHeaderName = "X-Request-ID"
