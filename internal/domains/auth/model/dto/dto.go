package dto

import (
	"frontdesk/infras/jwt"
	"strings"
)

// LoginRequest is read from the login form or the JSON body. Blank fields are
// reported by the service with its own message, so only length is validated here.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"max=128"`
	Password string `json:"password" form:"password" validate:"max=128"`
}

func (l *LoginRequest) Trim() {
	l.Username = strings.TrimSpace(l.Username)
	l.Password = strings.TrimSpace(l.Password)
}

type LoginResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
	TokenID  string `json:"token_id"`
}

func (l *LoginResponse) FromClaims(token string, claims *jwt.Claims) {
	l.Username = claims.Username
	l.Token = token
	l.TokenID = claims.TokenID
}

// Session is the record kept in the session store for every live token.
type Session struct {
	Username string `json:"username"`
	LoginAt  string `json:"login_at"`
}

func SessionKey(tokenID string) string {
	return "session:" + tokenID
}
