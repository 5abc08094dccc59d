package main

import (
	"github.com/orbitwise/fdsaas/internal/cli"
)

func main() {
	cli.Execute()
}
