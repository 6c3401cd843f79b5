// Package main is the entry point for the archaeo CLI tool.
package main

import (
	"github.com/archaeo-tools/archaeo/internal/cmd"
)

func main() {
	cmd.Execute()
}
