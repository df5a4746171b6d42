// Package main is the entry point for the pricepi CLI.
package main

import (
	"github.com/donaldgifford/pricepi/cmd/pricepi/cmd"
)

func main() {
	cmd.Execute()
}
