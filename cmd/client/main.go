package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	root, cleanup := newRootCmd()
	err := root.ExecuteContext(ctx)
	if cerr := cleanup(); cerr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cerr)
		err = errors.Join(err, cerr)
	}
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("gymsync client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
