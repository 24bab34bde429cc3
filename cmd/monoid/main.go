package main

import "github.com/pfrederiksen/monoid-roster/internal/cli"

func main() {
	cli.Execute()
}
