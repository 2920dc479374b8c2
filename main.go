// Package main provides the gngenomes CLI application.
// gngenomes surveys how well taxonomic groups are covered by
// sequenced genome assemblies.
package main

import (
	"github.com/gnames/gngenomes/cmd"
)

func main() {
	cmd.Execute()
}
