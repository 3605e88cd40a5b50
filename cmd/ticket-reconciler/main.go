package main

import "github.com/nmsops/ticket-reconciler/cmd/ticket-reconciler/cmd"

func main() {
	cmd.Execute()
}
