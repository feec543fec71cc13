package main

import "github.com/jfmyers9/spindle/cmd"

func main() {
	cmd.Execute()
}
