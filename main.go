package main

import "tpch-sweep/internal/cli"

func main() {
	cli.Execute()
}
