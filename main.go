package main

import "cutxml/cmd"

func main() {
	cmd.Execute()
}
