package main

import "github.com/furisto/codex-swarm/frontend/cli/cmd"

func main() {
	cmd.Execute()
}
