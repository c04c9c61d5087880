package main

import "github.com/notargets/gowindtunnel/cmd"

func main() {
	cmd.Execute()
}
