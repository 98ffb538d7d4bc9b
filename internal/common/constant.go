package common

// AccessTokenHeaderName is the HTTP header used to carry the bearer access
// token on outbound requests.
const AccessTokenHeaderName = "Authorization"

// SessionValidationInterval is how often an authenticated client re-checks
// its session against the server, in seconds. Kept here so the client and
// the server-side session TTL agree on an order of magnitude.
const SessionValidationIntervalSeconds = 300
