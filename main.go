package main

import "github.com/theirongolddev/compound/cmd"

func main() {
	cmd.Execute()
}
