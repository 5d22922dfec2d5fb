package cli

import (
	"context"

	"github.com/UnendingLoop/minigrep/internal/appmode"
	"github.com/UnendingLoop/minigrep/internal/parser"
	"github.com/spf13/cobra"
)

// runNode serves search tasks on address until the command context is cancelled
func runNode(cmd *cobra.Command, address string, cacheSize int) error {
	if err := parser.ValidateNodeAddress(address); err != nil {
		return err
	}

	ctx, stop := context.WithCancel(cmd.Context())
	defer stop()
	return appmode.RunNode(ctx, stop, address, cacheSize)
}
