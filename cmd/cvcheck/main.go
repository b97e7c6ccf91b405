package main

import (
	"errors"
	"os"

	"github.com/ryanng9672/CVOfflineCheck-CompositeView-Offline-PDF-Checker/internal/audit"
)

// Exit codes: 0 = audit completed, 1 = audit aborted (stale/missing
// reports, bad schema, nothing to check), 2 = usage or environment error.
func main() {
	if err := rootCmd.Execute(); err != nil {
		var abort *audit.AbortError
		if errors.As(err, &abort) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}
