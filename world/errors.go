package world

import "errors"

var (
	errNoTerrains = errors.New("world: terrain registry is empty")
)
