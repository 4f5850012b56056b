package main

import (
	"os"

	"github.com/dshills/arbiter/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
