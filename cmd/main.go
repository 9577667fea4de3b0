package main

import (
	"os"

	"github.com/KokserM/kazoot-quiz/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
