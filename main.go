package main

import "github.com/denysvitali/webtree/cmd"

func main() {
	cmd.Execute()
}
