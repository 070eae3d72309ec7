package main

import "github.com/richardcmg7/dao-voting-platform/cmd/dao-cli/cmd"

func main() {
	cmd.Execute()
}
