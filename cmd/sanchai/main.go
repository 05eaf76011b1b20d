// Command sanchai is a terminal chat client for the SanchAI weather agent.
package main

import "github.com/sanchai/sanchai/internal/commands"

func main() {
	commands.Execute()
}
