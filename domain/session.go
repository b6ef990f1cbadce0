package domain

// CredentialPair is the current access/refresh token pair.
// Validity is only discovered by calling the service.
type CredentialPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

type SessionState int

const (
	SessionLoading SessionState = iota
	SessionAnonymous
	SessionAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case SessionLoading:
		return "loading"
	case SessionAnonymous:
		return "anonymous"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Principal is the identity of an authenticated session.
// UserID is zero when it could not be recovered from the access token.
type Principal struct {
	UserID   ParticipantID
	Username string
}

type Session struct {
	State     SessionState
	Principal *Principal
}

func (s Session) IsAuthenticated() bool {
	return s.State == SessionAuthenticated
}
