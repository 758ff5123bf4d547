package main

import "github.com/frahmantamala/onboarding-management/cmd"

func main() {
	cmd.Execute()
}
