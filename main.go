package main

import "github.com/notargets/isofem/cmd"

func main() {
	cmd.Execute()
}
