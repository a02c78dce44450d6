package domain

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Session maps an opaque bearer token to an authenticated user. Issued and
// validated by the session store; every cart and order operation is gated on
// one.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}
