package main

import (
	"os"

	"github.com/ziadkadry99/notebook/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
