// ABOUTME: Entry point for the campusbot CLI
// ABOUTME: Interactive terminal client for the CampusBot campus assistant

package main

import (
	"fmt"
	"os"

	"campusbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
