package main

import "imgdiff/cmd"

func main() {
	cmd.Execute()
}
