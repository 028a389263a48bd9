package main

import (
	"fmt"
	"os"

	"github.com/crucial707/bloglet/cmd/cli/root"

	_ "github.com/crucial707/bloglet/cmd/cli/initdb"
	_ "github.com/crucial707/bloglet/cmd/cli/posts"
)

func main() {
	if err := root.GetRoot().Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
