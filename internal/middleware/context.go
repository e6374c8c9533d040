// AngelaMos | 2026
// context.go

package middleware

type contextKey string

const ClaimsKey contextKey = "session_claims"
