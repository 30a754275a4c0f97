// Command grade applies non-destructive color grading to an image, either
// headless (-o) or in an interactive terminal session.
package main

import (
	"os"

	"github.com/Fepozopo/grade/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
