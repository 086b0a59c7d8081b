//go:build !tinygo && !cgo

package main

import (
	"github.com/ajanata/deskbuddy/internal/sim"
)

func newSpeaker() sim.Speaker { return nil }
