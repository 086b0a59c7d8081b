//go:build !tinygo && !cgo

package main

import (
	"errors"

	"github.com/ajanata/deskbuddy"
	"github.com/ajanata/deskbuddy/internal/sim"
)

func runWindow(*deskbuddy.Buddy, *sim.Driver, uint, int) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1), or use -headless")
}
