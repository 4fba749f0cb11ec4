package main

import "github.com/jwalitptl/practice-dashboard/cmd/dashctl/command"

func main() {
	command.Execute()
}
