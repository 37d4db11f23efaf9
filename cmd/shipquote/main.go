package main

import "github.com/aalvaropc/shipquote/internal/cli"

func main() {
	cli.Execute()
}
