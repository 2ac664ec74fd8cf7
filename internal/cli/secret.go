package cli

import (
	"fmt"
	"io"

	"github.com/terraincognita07/daylog/internal/security"
)

// RunGenerateSecretCommand prints a value suitable for SECRET_KEY. Lengths
// below security.MinSecretLength are raised to it.
func RunGenerateSecretCommand(out io.Writer, length int) error {
	secret, err := security.NewSecret(length)
	if err != nil {
		return fmt.Errorf("generate secret: %w", err)
	}
	fmt.Fprintln(out, secret)
	return nil
}
