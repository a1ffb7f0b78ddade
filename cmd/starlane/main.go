package main

import "github.com/andrescamacho/starlane/internal/adapters/cli"

func main() {
	cli.Execute()
}
