package main

import "github.com/tanq16/xdcc/cmd"

func main() {
	cmd.Execute()
}
