package main

import "github.com/maternalrisk/backend/internal/cli"

func main() {
	cli.Execute()
}
