package main

import "github.com/kryonlabs/kryon-ir/cmd"

func main() {
	cmd.Execute()
}
