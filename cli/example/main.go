// Command example runs a shell behind vtterm and renders it to the
// terminal this program itself is running in.
//
// Usage:
//
//	go run .                 # run $SHELL
//	go run . -- vim           # run vim
//
// Only the first word after -- is used as the program to run; any
// further arguments are ignored.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phroun/vtterm/cli"
)

func main() {
	shell := ""
	for i, arg := range os.Args[1:] {
		if arg == "--" && i+2 <= len(os.Args[1:]) {
			rest := os.Args[i+2:]
			if len(rest) > 0 {
				shell = rest[0]
			}
			break
		}
	}

	host, err := cli.New(cli.Options{Shell: shell, Cols: 80, Rows: 24})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start host: %v\n", err)
		os.Exit(1)
	}
	defer host.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		host.Close()
		os.Exit(0)
	}()

	if err := host.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "session ended with error: %v\n", err)
		os.Exit(1)
	}
}
