package domain

import "time"

// AuthType is the kind of secondary verification the wallet requires.
type AuthType string

const (
	AuthTypeSMS  AuthType = "sms"
	AuthTypeTOTP AuthType = "totp"
)

func (t AuthType) Valid() bool {
	return t == AuthTypeSMS || t == AuthTypeTOTP
}

// AuthSession is an in-progress wallet challenge. It lives only in memory.
type AuthSession struct {
	ContextID           string        `json:"auth_context_id"`
	AuthType            AuthType      `json:"auth_type"`
	ProcessID           string        `json:"process_id"`
	CodeLength          int           `json:"code_length,omitempty"`
	NextSessionTimeLeft time.Duration `json:"next_session_time_left,omitempty"`
}

// WalletAuthorization is a fully authorized wallet credential.
type WalletAuthorization struct {
	AccessToken string `json:"access_token"`
}

// LoginResponse holds exactly one of Authorized or Challenge.
type LoginResponse struct {
	Authorized *WalletAuthorization
	Challenge  *AuthSession
}

func AuthorizedResponse(token string) *LoginResponse {
	return &LoginResponse{Authorized: &WalletAuthorization{AccessToken: token}}
}

func ChallengeResponse(session AuthSession) *LoginResponse {
	return &LoginResponse{Challenge: &session}
}

// IsAuthorized reports whether no further challenge is needed.
func (r *LoginResponse) IsAuthorized() bool {
	return r != nil && r.Authorized != nil
}

// PaymentUsageLimit tells the wallet how many payments a token may authorize.
type PaymentUsageLimit string

const (
	UsageLimitSingle   PaymentUsageLimit = "single"
	UsageLimitMultiple PaymentUsageLimit = "multiple"
)
