package main

import (
	"os"

	"github.com/hydrohtml/hydro/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
