package entity

// User is the identity decoded from a pre-validated access token. The
// service trusts the decode; signature verification belongs to the
// auth backend.
type User struct {
	UserID     int64  `json:"user_id"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Email      string `json:"email"`
	RoleTypeID int    `json:"role_type_id"`
	ExpiresAt  int64  `json:"exp"`
	IssuedAt   int64  `json:"iat"`
}

// AuthResult is what a successful login yields.
type AuthResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	User         *User  `json:"user,omitempty"`
}

// DashboardSummary is the read-only stat tile payload.
type DashboardSummary struct {
	TotalEnvelopes int `json:"total_envelopes"`
	AwaitingOthers int `json:"awaiting_others"`
	AwaitingYou    int `json:"awaiting_you"`
	Completed      int `json:"completed"`
}
