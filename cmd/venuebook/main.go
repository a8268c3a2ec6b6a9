package main

import "github.com/m04kA/venuebook/internal/cli"

func main() {
	cli.Execute()
}
