// Command docspace is a CLI over the workspace API client. Reads are
// answered from the client's cache when fresh; writes invalidate the
// affected entries.
//
// Configuration comes from DOCSPACE_* environment variables; see the
// config package.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "docspace:", err)
		os.Exit(1)
	}
}
