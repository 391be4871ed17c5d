package main

import (
	"fmt"
	"os"

	"github.com/OFFIS-RIT/annograph/internal/cli"
	"github.com/OFFIS-RIT/annograph/internal/util"
)

func main() {
	util.LoadEnv()

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "srlview:", err)
		os.Exit(1)
	}
}
