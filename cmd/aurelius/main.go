package main

import (
	"os"

	"github.com/wonny/aurelius/cmd/aurelius/commands"
)

// main is the entry point for the Aurelius CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/aurelius [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
