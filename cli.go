//go:build cli
// +build cli

package main

import (
	_ "shipshare.GO/custom"

	"shipshare.GO/cmd"
	"shipshare.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
