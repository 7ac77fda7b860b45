package main

import (
	"fmt"
	"os"
	"time"
)

func main() {
	if err := NewRoot(time.Now).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
