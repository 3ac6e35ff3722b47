package main

import "github.com/nfrund/askboard/cmd/askboard-cli/cmd"

func main() {
	cmd.Execute()
}
