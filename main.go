package main

import "github.com/yhkl-dev/trackdeck/cmd"

func main() {
	cmd.Execute()
}
