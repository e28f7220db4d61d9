package main

import (
	"os"

	"github.com/arthur-debert/dotlink/cmd/dotlink"
)

func main() {
	os.Exit(dotlink.Execute(dotlink.NewRootCmd(), os.Args[1:], os.Stderr))
}
