package encryption

import (
	"fmt"

	"github.com/vbagdi/Mood-Tracker-291/internal/config"
	"github.com/vbagdi/Mood-Tracker-291/internal/tracker"
)

// NewEncryptorFromConfig creates an Encryptor based on the configuration type.
// A nil Encryptor means documents are stored in plaintext.
func NewEncryptorFromConfig(cfg config.EncryptionConfig) (tracker.Encryptor, error) {
	switch cfg.Type {
	case "none", "":
		return nil, nil
	case "age":
		return NewAgeEncryptor(cfg), nil
	case "test":
		return NewTestEncryptor(), nil
	default:
		return nil, fmt.Errorf("unknown encryption type: %q", cfg.Type)
	}
}
