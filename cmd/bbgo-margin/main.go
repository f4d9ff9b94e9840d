package main

import (
	"github.com/c9s/bbgo-margin/pkg/cmd"
)

func main() {
	cmd.Execute()
}
