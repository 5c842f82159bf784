package main

import (
	"github.com/filekit/dupfind/cmd"
)

func main() {
	cmd.Execute()
}
