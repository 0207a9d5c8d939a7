package main

import "localsearch/internal/cli"

func main() {
	cli.Execute()
}
