package valueobject

// Session is the credential pair issued on sign-in. An empty session is valid:
// registration succeeds even when the follow-up sign-in fails, and the
// response then carries default token fields.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

func NewSession(accessToken, refreshToken string, expiresIn int) *Session {
	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}
}

// EmptySession is returned when sign-in could not be completed; expires_in
// keeps the conventional default so clients see a well-formed shape.
func EmptySession() *Session {
	return &Session{ExpiresIn: 3600}
}
