package core

// Command is an order issued to an entity. The set of variants is closed.
type Command interface {
	Name() string
	command()
}

// MoveCommand moves to a point.
type MoveCommand struct{ X, Y float64 }

// AttackMoveCommand moves to a point, engaging enemies on the way.
type AttackMoveCommand struct{ X, Y float64 }

// AttackCommand attacks a specific entity.
type AttackCommand struct{ Target *Entity }

// PatrolCommand loops between the current position and a point.
type PatrolCommand struct{ X, Y float64 }

// StopCommand clears all orders.
type StopCommand struct{}

// HoldCommand stops and holds position.
type HoldCommand struct{}

// HarvestCommand gathers from a resource.
type HarvestCommand struct{ Resource *Resource }

// BuildCommand places a structure.
type BuildCommand struct {
	Type string
	X, Y float64
}

// ProduceCommand trains a unit at the selected building.
type ProduceCommand struct{ Unit string }

// RallyCommand sets a building's rally point.
type RallyCommand struct{ X, Y float64 }

// AbilityCommand activates an ability at a point.
type AbilityCommand struct {
	Key  string
	X, Y float64
}

func (MoveCommand) Name() string       { return "move" }
func (AttackMoveCommand) Name() string { return "attackMove" }
func (AttackCommand) Name() string     { return "attack" }
func (PatrolCommand) Name() string     { return "patrol" }
func (StopCommand) Name() string       { return "stop" }
func (HoldCommand) Name() string       { return "hold" }
func (HarvestCommand) Name() string    { return "harvest" }
func (BuildCommand) Name() string      { return "build" }
func (ProduceCommand) Name() string    { return "produce" }
func (RallyCommand) Name() string      { return "rally" }
func (AbilityCommand) Name() string    { return "ability" }

func (MoveCommand) command()       {}
func (AttackMoveCommand) command() {}
func (AttackCommand) command()     {}
func (PatrolCommand) command()     {}
func (StopCommand) command()       {}
func (HoldCommand) command()       {}
func (HarvestCommand) command()    {}
func (BuildCommand) command()      {}
func (ProduceCommand) command()    {}
func (RallyCommand) command()      {}
func (AbilityCommand) command()    {}
