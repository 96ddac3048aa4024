package main

import (
	"getting-started-gl/launch"
	"getting-started-gl/libscn"
	"os"
)

func main() {
	os.Exit(launch.Main("Triangle", libscn.Triangle()))
}
