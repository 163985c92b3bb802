package main

import (
	"github.com/qrally/qrally/internal/cli"
)

func main() {
	cli.Execute()
}
