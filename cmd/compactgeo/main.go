package main

import "compactgeo/internal/cli"

func main() {
	cli.Execute()
}
