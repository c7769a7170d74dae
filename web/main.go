//go:build js

package main

import (
	"context"
	"log/slog"
	"syscall/js"

	"github.com/oliverbestmann/gl2d/glimpse"
	"github.com/oliverbestmann/gl2d/orion"
	"github.com/oliverbestmann/gl2d/pulse"
	"github.com/oliverbestmann/gl2d/raster"
)

func main() {
	orion.ConfigureLogging()

	err := orion.Run(context.Background(), orion.RunOptions{
		Module:   &pulse.Module{},
		Fallback: &raster.Module{},

		Window: glimpse.WindowOptions{
			ContainerID: "surface",
		},

		OnReady: showLicense,

		OnError: func(win glimpse.Window, err error) {
			slog.Error("Surface failed", slog.String("err", err.Error()))
			glimpse.ShowError(win, err)
		},
	})

	orion.Handle(err, "run surface")
}

// showLicense writes the license notice of the engine into
// the element with id "license", creating it if needed.
func showLicense(license string) {
	document := js.Global().Get("document")

	elem := document.Call("getElementById", "license")
	if elem.IsNull() {
		elem = document.Call("createElement", "pre")
		elem.Set("id", "license")
		document.Get("body").Call("appendChild", elem)
	}

	elem.Set("textContent", license)
}
