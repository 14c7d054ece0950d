// Command headturn drives the yaw amplification layer outside of an OpenXR loader: it replays
// scenarios through a simulated runtime, renders the frame flow and writes the layer manifest.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
