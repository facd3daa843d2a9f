package main

import "github.com/Advait-MD/Conductor/cmd"

func main() {
	cmd.Execute()
}
