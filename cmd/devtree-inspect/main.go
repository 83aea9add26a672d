package main

import "devtree/cmd/devtree-inspect/cmd"

func main() {
	cmd.Execute()
}
