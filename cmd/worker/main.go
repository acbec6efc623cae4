package main

import (
	"os"

	"github.com/mys-constructora/backoffice/cmd/worker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
