package main

import (
	"os"
	_ "time/tzdata"
)

func main() {
	if err := newRootCmd(serviceFromConfig).Execute(); err != nil {
		os.Exit(1)
	}
}
