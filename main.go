package main

import "csvdash/cmd"

func main() {
	cmd.Execute()
}
