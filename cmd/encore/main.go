package main

import "github.com/NVIDIA/encore/pkg/cli"

func main() {
	cli.Execute()
}
