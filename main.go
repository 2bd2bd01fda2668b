package main

import "github.com/openclerk/backoffice/cmd"

func main() {
	cmd.Execute()
}
