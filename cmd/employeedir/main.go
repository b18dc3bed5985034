package main

import (
	"context"

	"employeedir/cmd/employeedir/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
