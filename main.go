package main

import "github.com/nbiish/mcp-calc-tools/cmd"

func main() {
	cmd.Execute()
}
