package orion

import (
	"errors"
	"fmt"
)

var ErrEngineInit = errors.New("engine initialization failed")
var ErrAlreadyMounted = errors.New("surface already mounted")
var ErrUnmounted = errors.New("surface was unmounted")

// Handle panics if err is not nil. Meant for main functions.
func Handle(err error, desc string, args ...any) {
	if err != nil {
		text := fmt.Sprintf(desc, args...)
		panic(text + ": " + err.Error())
	}
}
