package main

import (
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/openiov/audictl/cmd/audictl/app"
)

func main() {
	if err := app.NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
