package world

import "dinorun/internal/asset"

// nopLoader never delivers, leaving entities inert. Used when no loader is
// configured, e.g. for pure pool bookkeeping.
type nopLoader struct{}

func (nopLoader) Load(string, asset.ReadyFunc) error { return nil }
