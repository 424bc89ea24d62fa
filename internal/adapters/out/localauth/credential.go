package localauth

import (
	"time"
)

// CredentialDTO is the local credential table. It is migrated alongside the
// store schema when the local provider is enabled.
type CredentialDTO struct {
	UID              string    `gorm:"primaryKey"`
	Email            string    `gorm:"uniqueIndex;not null"`
	PasswordHash     string    `gorm:"not null"`
	TokensValidAfter time.Time `gorm:"not null"`
	CreatedAt        time.Time
}

func (CredentialDTO) TableName() string {
	return "credentials"
}
