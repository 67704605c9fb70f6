package main

import (
	"os"

	"catalog_backend/internal/app/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
