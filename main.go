// file: main.go
// version: 1.0.0
// guid: 88b3c1f6-2a5d-4e08-9c47-d60e9f5a21b4

package main

import (
	"fmt"
	"os"

	"github.com/jdfalk/respcache/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
