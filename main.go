package main

import "github.com/KaramelBytes/irislab/cmd"

func main() {
	cmd.Execute()
}
