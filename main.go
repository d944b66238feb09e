package main

import "github.com/gaurav-prasanna/helpdoc/cmd"

func main() {
	cmd.Execute()
}
