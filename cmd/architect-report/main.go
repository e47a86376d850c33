package main

import (
	"fmt"
	"os"

	"architect-report/cmd/architect-report/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
