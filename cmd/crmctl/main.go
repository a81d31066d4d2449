package main

import "github.com/Rahul675/indyanet-crm/cmd/crmctl/cmd"

func main() {
	cmd.Execute()
}
