package dto

// RegisterRequest payload for new members.
type RegisterRequest struct {
	Email     string `json:"email"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Password  string `json:"password"`
}

// TokenResponse is the wire form of an issued token pair. Expiries are epoch
// seconds.
type TokenResponse struct {
	AccessToken   string `json:"access_token"`
	RefreshToken  string `json:"refresh_token"`
	TokenType     string `json:"token_type"`
	AccessExpiry  int64  `json:"access_expiry_epoch_seconds"`
	RefreshExpiry int64  `json:"refresh_expiry_epoch_seconds"`
}
