package tokens

// ITokenStore is the persisted holder of the access/refresh credential pair.
// It lives outside the session store: written by the effect coordinator on
// login/refresh success, cleared on logout, read by the refresh intent and by
// outbound request interceptors.
type ITokenStore interface {
	SetTokens(accessToken string, refreshToken string) error
	GetAccessToken() (string, error)
	GetRefreshToken() (string, error)
	ClearTokens() error
	Close() error
}
