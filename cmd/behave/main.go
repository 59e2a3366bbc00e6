// Package main is the entry point of the behave command.
package main

import "github.com/sarchlab/behave/cli"

func main() {
	cli.Execute()
}
