package main

import (
	"os"

	"github.com/warwickallen/allen-app-challenge-2026/internal/commands"
)

func main() {
	os.Exit(commands.Execute())
}
