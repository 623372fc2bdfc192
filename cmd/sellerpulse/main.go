package main

import "github.com/sellerpulse/sellerpulse/internal/cmd"

func main() {
	cmd.Execute()
}
