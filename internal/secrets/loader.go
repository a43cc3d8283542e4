package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spigell/hire-scorer/internal/domain"
)

// Source describes how to load a credential.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// Value is an inline secret value provided via configuration.
	Value string
	// File points to a file containing the secret. It wins over Env and Value.
	File string
	// Env names an environment variable holding the secret. It wins over Value.
	Env string
}

// Load resolves the secret from File, then Env, then Value. The result is
// trimmed. A source with nothing configured returns an error wrapping
// domain.ErrCredentialMissing.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return secret, nil
	}

	if env := strings.TrimSpace(src.Env); env != "" {
		if secret := strings.TrimSpace(os.Getenv(env)); secret != "" {
			return secret, nil
		}
	}

	if secret := strings.TrimSpace(src.Value); secret != "" {
		return secret, nil
	}

	return "", fmt.Errorf("%s: %w", name, domain.ErrCredentialMissing)
}

// Optional behaves like Load but treats a missing credential as empty.
// Unreadable files are still reported.
func Optional(src Source) (string, error) {
	secret, err := Load(src)
	if errors.Is(err, domain.ErrCredentialMissing) {
		return "", nil
	}
	return secret, err
}
