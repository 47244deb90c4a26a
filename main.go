package main

import "github.com/amasdatadriven/backend/cmd"

func main() {
	cmd.Execute()
}
