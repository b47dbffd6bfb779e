package main

import (
	"os"

	"github.com/hpowernl/nginx2json/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
