package main

import (
	"os"

	"github.com/CrestNiraj12/openfeed/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
