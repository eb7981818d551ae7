package main

import "github.com/gaurav-prasanna/gallerygen/cmd"

func main() {
	cmd.Execute()
}
