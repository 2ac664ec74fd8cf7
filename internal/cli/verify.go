package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/terraincognita07/daylog/internal/services"
)

// IntegrityVerifier is the part of the journal service the verify command
// needs.
type IntegrityVerifier interface {
	Verify(ctx context.Context) ([]services.IntegrityIssue, error)
}

// RunVerifyCommand checks the stored journal and prints one line per
// problem. It fails when any problem is found.
func RunVerifyCommand(ctx context.Context, journal IntegrityVerifier, out io.Writer) error {
	issues, err := journal.Verify(ctx)
	if err != nil {
		return fmt.Errorf("verify journal: %w", err)
	}

	if len(issues) == 0 {
		fmt.Fprintln(out, "✅ Journal is consistent")
		return nil
	}

	for _, issue := range issues {
		fmt.Fprintln(out, issue.String())
	}
	return fmt.Errorf("found %d integrity issue(s)", len(issues))
}
