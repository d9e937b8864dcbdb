package main

import "github.com/KostasZigo/gitobj/cmd"

func main() {
	cmd.Execute()
}
