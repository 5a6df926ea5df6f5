package main

import "github.com/Alijeyrad/clinic_console/cmd"

func main() {
	cmd.Execute()
}
