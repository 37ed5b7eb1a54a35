package main

import "github.com/ArnaudCalmettes/histeq/cmd"

func main() {
	cmd.Execute()
}
