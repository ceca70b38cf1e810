package main

import (
	"fmt"
	"os"
)

func main() {
	opts := optionsFromEnv()
	if err := buildRootCmd(opts).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
