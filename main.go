package main

import "github.com/tranvictor/electiongw/cmd"

func main() {
	cmd.Execute()
}
