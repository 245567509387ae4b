package main

import "recipe-grocery/internal/cli"

func main() {
	cli.Execute()
}
