package main

import "garmirror/cmd/garmirror/cmd"

func main() {
	cmd.Execute()
}
