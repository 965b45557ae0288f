package main

import "github.com/papapumpkin/unionviz/cmd"

func main() {
	cmd.Execute()
}
