// main is the entry point for the goatrank CLI.
package main

import (
	"fmt"
	"os"

	"github.com/goatarena/goatrank/cmd"
	"github.com/goatarena/goatrank/internal/goatstore"
)

func main() {
	err := cmd.Execute()
	goatstore.CloseStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
