package main

import "devtree/cmd/devtree-cli/cmd"

func main() {
	cmd.Execute()
}
