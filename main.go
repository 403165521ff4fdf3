package main

import "github.com/crashtools/socorro-cli/cmd"

func main() {
	cmd.Execute()
}
