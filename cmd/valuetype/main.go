package main

import (
	"github.com/tomdalling/value-type/pkg/cli"
)

func main() {
	cli.Execute()
}
