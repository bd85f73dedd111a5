package main

import "craftwarden/cmd"

func main() {
	cmd.Execute()
}
