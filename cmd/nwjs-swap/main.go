package main

import "github.com/oshokin/nwjs-swap/cmd/nwjs-swap/cmd"

func main() {
	cmd.Execute()
}
