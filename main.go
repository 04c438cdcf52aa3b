package main

import "github.com/krishkalaria12/blogly/commands"

func main() {
	commands.Execute()
}
