package main

import "github.com/sudoplatform-labs/sudo-di-agent-console/cmd"

func main() {
	cmd.Execute()
}
