package main

import (
	"os"

	"github.com/orizon-lang/csfront/cmd/csfront/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
