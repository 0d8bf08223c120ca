package main

import cmd "github.com/rohmanhakim/atcoder-cli/internal/cli"

func main() {
	cmd.Execute()
}
