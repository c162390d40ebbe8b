package main

import (
	"errors"
	"fmt"
	"os"
)

// Version is overridden at release time via -ldflags.
var Version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "docrun:", err)
		var scriptErr *scriptError
		if errors.As(err, &scriptErr) && scriptErr.code > 0 {
			os.Exit(scriptErr.code)
		}
		os.Exit(1)
	}
}
