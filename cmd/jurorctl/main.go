package main

import (
	"github.com/openexpo/jurypanel/internal/cli"
)

func main() {
	cli.Execute()
}
