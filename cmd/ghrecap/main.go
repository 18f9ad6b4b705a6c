package main

import "github.com/vukan322/ghrecap/internal/cmd"

func main() {
	cmd.Execute()
}
