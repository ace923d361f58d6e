package domain

// Session is a server-side admin session row, keyed by the opaque id carried
// in the session cookie. ExpiresAt is unix seconds; 0 means no expiry.
type Session struct {
	ID        string `gorm:"type:varchar(128);primaryKey"`
	Data      []byte `gorm:"not null"`
	ExpiresAt int64  `gorm:"not null;default:0;index"`
}
