package main

import "github.com/KaramelBytes/statsctl/cmd"

func main() {
	cmd.Execute()
}
