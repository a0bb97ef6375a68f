package main

import (
	"os"

	"github.com/msto63/etds/cmd/etds/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
