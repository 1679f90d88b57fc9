package main

import "github.com/vietddude/godad/internal/cli"

func main() {
	cli.Execute()
}
