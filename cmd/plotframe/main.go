package main

import (
	"os"

	"github.com/paveg/plotframe/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
