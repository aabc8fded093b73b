package main

import (
	"os"

	"github.com/go-delve/jdwp/cmd/jdwpdump/cmds"
)

func main() {
	if err := cmds.New().Execute(); err != nil {
		os.Exit(1)
	}
}
