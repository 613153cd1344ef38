package main

import "github.com/matheusmosca/store-backend/cmd/store/commands"

func main() {
	commands.Execute()
}
