package main

import "clue-calendar/backend/internal/cli"

func main() {
	cli.Execute()
}
