/*
Copyright © 2026 Scriptdex Authors
*/
package main

import "github.com/scriptdex/scriptdex/cmd"

func main() {
	cmd.Execute()
}
