package main

import "github.com/dmitrijs2005/jiratime/internal/cli"

func main() {
	cli.Execute()
}
