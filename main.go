package main

import "github.com/theirongolddev/savrate/cmd"

func main() {
	cmd.Execute()
}
