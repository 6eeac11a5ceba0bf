package domain

// AuthClaims is the validated identity carried by a bearer token.
type AuthClaims struct {
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail"`
}
