package main

import "dreamplan/cmd/dp/root"

func main() {
	root.Execute()
}
