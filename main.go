package main

import "github.com/user/weatherbot/cmd"

func main() {
	cmd.Execute()
}
