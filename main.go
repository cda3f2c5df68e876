package main

import "github.com/brogergvhs/pagecheck/cmd"

func main() {
	cmd.Execute()
}
