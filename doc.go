/*
Package pivot is an image viewport transform engine. It keeps the scale, the rotation
and the scroll position of an image displayed inside a scrollable viewport consistent
across zooming, rotating, fitting and resizing, always keeping the image point under
an anchor at the same place on the screen.

The package provides a command line interface, which can open the image in a window
or render the viewport headlessly. To check the supported commands type:

	$ pivot --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"

		"github.com/esimov/pivot"
	)

	func main() {
		v := pivot.NewViewer(pivot.Size{Width: 2000, Height: 1000}, pivot.Size{Width: 800, Height: 600})
		v.ToggleZoom(0.25, 0.25)
		inst := v.RotateBy(90)

		fmt.Printf("scale: %v, rotation: %v°, scroll: %v,%v\n",
			inst.Scale, inst.Degrees(), inst.ScrollLeft, inst.ScrollTop)
	}
*/
package pivot
