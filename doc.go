// Package tokens implements credential issuance and token lifecycle:
// password verification, dual access/refresh JWT issuance, strict claim
// validation, and single-use refresh rotation backed by persistent storage.
//
// Issuance:
//   - Auther composes the token codec and the repositories. Authenticating by
//     password, by user id, or by refresh token always mints a matched pair:
//     a short-lived "auth" token and a long-lived "refresh" token carrying the
//     same userId/authorities claims. Both records persist in one transaction,
//     so a failed issuance never leaves a single orphaned token behind.
//
// Rotation:
//   - Refresh tokens are single use. AuthenticateByRefreshToken verifies the
//     envelope and payload, cross-checks the persisted record, and invalidates
//     it before a new pair exists. Two callers racing on the same refresh
//     token resolve to exactly one success; the loser gets a not-found error.
//
// Validation:
//   - The codec distinguishes an inherently expired token (recoverable via
//     refresh) from a forged, tampered, or semantically incomplete one (never
//     recoverable). A token whose signature verifies but whose payload lacks
//     userId, authorities, or jti is rejected as malformed all the same.
//
// HTTP transports, rate limiting, and user management consume this package
// through the Authenticator and Session interfaces; none of them live here.
package tokens
