package main

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	blankBlazeOnce sync.Once
	blankBlazeImg  *ebiten.Image
)

// blankBlaze returns the shared fully-transparent blaze skin.
func blankBlaze() *ebiten.Image {
	blankBlazeOnce.Do(func() {
		// Matches the host's blaze skin dimensions; left transparent.
		blankBlazeImg = ebiten.NewImage(64, 32)
	})
	return blankBlazeImg
}

// blazeTextureFor is the render hook the host calls when binding a blaze
// entity's texture. With the blaze solver active inside dungeons the mob is
// rendered invisible so the solver's own markers stay readable.
func blazeTextureFor(def *ebiten.Image) *ebiten.Image {
	if gs.BlazeSolver && inDungeons {
		return blankBlaze()
	}
	return def
}
