package main

import "github.com/kozaktomas/skintone-advisor/cmd"

func main() {
	cmd.Execute()
}
