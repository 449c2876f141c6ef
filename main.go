package main

import (
	"os"

	"github.com/llehouerou/songbrowser/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
