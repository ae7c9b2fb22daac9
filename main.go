package main

import "github.com/smsflt/sms-filter/cmd"

func main() {
	cmd.Execute()
}
