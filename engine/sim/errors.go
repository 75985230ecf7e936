package sim

import "errors"

// Rejections returned by the command, build, production and ability APIs.
// Callers match them with errors.Is.
var (
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrSupplyCapped          = errors.New("insufficient supply")
	ErrMissingPrerequisite   = errors.New("missing prerequisite")
	ErrNoGeyser              = errors.New("must build on geyser")
	ErrCannotProduce         = errors.New("cannot produce")
	ErrUnknownType           = errors.New("unknown type")
	ErrNotABuilder           = errors.New("not a builder")
	ErrNotAHarvester         = errors.New("not a harvester")
	ErrOnCooldown            = errors.New("ability on cooldown")
	ErrInsufficientEnergy    = errors.New("insufficient energy")
	ErrOutOfRange            = errors.New("out of range")
	ErrNotABuilding          = errors.New("not a building")
	ErrResourceDepleted      = errors.New("resource depleted")
	ErrNoSelection           = errors.New("nothing selected")
)
