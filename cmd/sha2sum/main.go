package main

import (
	"sha2sum.org/sha2sum/cmd/sha2sum/cmd"
)

func main() {
	cmd.Execute()
}
