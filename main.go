package main

import "github.com/shed-tools/shed/cmd"

func main() {
	cmd.Execute()
}
