package main

import (
	"os"

	"github.com/olwandejj/Quizzify/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
