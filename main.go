package main

import "summon-cli/cmd"

func main() {
	cmd.Execute()
}
