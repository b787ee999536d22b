package main

import "ffcal/internal/cli"

func main() {
	cli.Execute()
}
