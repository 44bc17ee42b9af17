package main

import "github.com/Boateng555/assettrack-harren/cmd"

func main() {
	cmd.Execute()
}
