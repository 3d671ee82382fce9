package main

import "github.com/pfrederiksen/tahoe-conditions/internal/cli"

func main() {
	cli.Execute()
}
