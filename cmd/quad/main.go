package main

import (
	"getting-started-gl/launch"
	"getting-started-gl/libscn"
	"os"
)

// Draws a rectangle as two indexed triangles sharing a diagonal.
func main() {
	os.Exit(launch.Main("Quadrilateral", libscn.Quad()))
}
