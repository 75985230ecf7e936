package techtree

const (
	Protoss = "protoss"
	Zerg    = "zerg"
	Terran  = "terran"
)

func armored(n float64) *Bonus { return &Bonus{Class: "armored", Amount: n} }
func light(n float64) *Bonus   { return &Bonus{Class: "light", Amount: n} }

// NewTechTree creates the standard three-faction tech tree
func NewTechTree() *TechTree {
	tt := &TechTree{
		Units:     make(map[string]*UnitDef),
		Buildings: make(map[string]*BuildingDef),
		Abilities: make(map[string]*AbilityDef),
		Factions:  make(map[string]*FactionDef),
	}

	tt.Factions[Protoss] = &FactionDef{ID: Protoss, Name: "Protoss", Worker: "probe", Base: "nexus", Supply: "pylon", Gas: "assimilator", Style: StyleWarp}
	tt.Factions[Zerg] = &FactionDef{ID: Zerg, Name: "Zerg", Worker: "drone", Base: "hatchery", Supply: "overlord", Gas: "extractor", Style: StyleMorph}
	tt.Factions[Terran] = &FactionDef{ID: Terran, Name: "Terran", Worker: "scv", Base: "commandcenter", Supply: "supplydepot", Gas: "refinery", Style: StyleConstruct}

	tt.Abilities["blink"] = &AbilityDef{ID: "blink", Name: "Blink", Hotkey: "B", Cooldown: 7000, Range: 8, Targeted: true}
	tt.Abilities["stim"] = &AbilityDef{ID: "stim", Name: "Stimpack", Hotkey: "T", HPCost: 10, Duration: 11000, SpeedMult: 1.5, AttackMult: 1.5}
	tt.Abilities["siege"] = &AbilityDef{ID: "siege", Name: "Siege Mode", Hotkey: "E", Cooldown: 2000}

	// Protoss units
	tt.add(&UnitDef{ID: "probe", Faction: Protoss, HP: 20, Shield: 20, Damage: 5, AttackSpeed: 1500, Range: 0.5, Speed: 2.8, Size: 11, Vision: 8, Cost: Cost{50, 0}, BuildTime: 12, Supply: 1, ProducedBy: "nexus", Harvester: true, Builder: true, Hotkey: "E"})
	tt.add(&UnitDef{ID: "zealot", Faction: Protoss, HP: 100, Shield: 50, Armor: 1, Damage: 8, Hits: 2, AttackSpeed: 1200, Range: 0.5, Speed: 2.75, Size: 14, Vision: 9, Cost: Cost{100, 0}, BuildTime: 27, Supply: 2, ProducedBy: "gateway", Hotkey: "Z"})
	tt.add(&UnitDef{ID: "stalker", Faction: Protoss, HP: 80, Shield: 80, Armor: 1, Damage: 13, Bonus: armored(5), AttackSpeed: 1440, Range: 6, Speed: 3.15, Size: 14, Vision: 10, Cost: Cost{125, 50}, BuildTime: 30, Supply: 2, ProducedBy: "gateway", Prereqs: []string{"cybercore"}, Projectile: "particle", Abilities: []string{"blink"}, Hotkey: "S"})
	tt.add(&UnitDef{ID: "sentry", Faction: Protoss, HP: 40, Shield: 40, Armor: 1, Damage: 6, AttackSpeed: 1000, Range: 5, Speed: 2.75, Size: 12, Vision: 10, Cost: Cost{50, 100}, BuildTime: 26, Supply: 2, ProducedBy: "gateway", Prereqs: []string{"cybercore"}, Projectile: "particle", Energy: 50, MaxEnergy: 200, Hotkey: "E"})
	tt.add(&UnitDef{ID: "immortal", Faction: Protoss, HP: 200, Shield: 100, Armor: 1, Damage: 20, Bonus: armored(30), AttackSpeed: 1450, Range: 6, Speed: 2.25, Size: 20, Vision: 9, Cost: Cost{275, 100}, BuildTime: 39, Supply: 4, ProducedBy: "robo", Projectile: "plasma", Hotkey: "I"})
	tt.add(&UnitDef{ID: "colossus", Faction: Protoss, HP: 200, Shield: 150, Armor: 1, Damage: 10, AttackSpeed: 1650, Range: 7, Speed: 2.25, Size: 28, Vision: 10, Cost: Cost{300, 200}, BuildTime: 54, Supply: 6, ProducedBy: "robo", Prereqs: []string{"robobay"}, Projectile: "beam", Splash: 40, Hotkey: "C"})

	// Zerg units
	tt.add(&UnitDef{ID: "drone", Faction: Zerg, HP: 40, Damage: 5, AttackSpeed: 1500, Range: 0.5, Speed: 2.8, Size: 11, Vision: 8, Cost: Cost{50, 0}, BuildTime: 12, Supply: 1, ProducedBy: "hatchery", Harvester: true, Builder: true, Hotkey: "D"})
	tt.add(&UnitDef{ID: "zergling", Faction: Zerg, HP: 35, Damage: 5, AttackSpeed: 696, Range: 0.5, Speed: 4.13, Size: 10, Vision: 8, Cost: Cost{25, 0}, BuildTime: 17, Supply: 0.5, ProducedBy: "hatchery", Prereqs: []string{"pool"}, SpawnCount: 2, Hotkey: "Z"})
	tt.add(&UnitDef{ID: "roach", Faction: Zerg, HP: 145, Armor: 1, Damage: 16, AttackSpeed: 1430, Range: 4, Speed: 3, Size: 14, Vision: 9, Cost: Cost{75, 25}, BuildTime: 19, Supply: 2, ProducedBy: "hatchery", Prereqs: []string{"warren"}, Projectile: "acid", Hotkey: "R"})
	tt.add(&UnitDef{ID: "hydralisk", Faction: Zerg, HP: 90, Damage: 12, AttackSpeed: 830, Range: 5, Speed: 3.15, Size: 14, Vision: 9, Cost: Cost{100, 50}, BuildTime: 24, Supply: 2, ProducedBy: "hatchery", Prereqs: []string{"den"}, Projectile: "spine", Hotkey: "H"})
	tt.add(&UnitDef{ID: "mutalisk", Faction: Zerg, HP: 120, Damage: 9, AttackSpeed: 1800, Range: 3, Speed: 4, Size: 14, Vision: 11, Cost: Cost{100, 100}, BuildTime: 24, Supply: 2, ProducedBy: "hatchery", Prereqs: []string{"spire"}, Flying: true, Projectile: "glaive", Hotkey: "T"})
	tt.add(&UnitDef{ID: "ultralisk", Faction: Zerg, HP: 500, Armor: 2, Damage: 35, AttackSpeed: 1100, Range: 1, Speed: 4.13, Size: 32, Vision: 9, Cost: Cost{300, 200}, BuildTime: 39, Supply: 6, ProducedBy: "hatchery", Prereqs: []string{"cavern"}, Splash: 20, Hotkey: "U"})
	tt.add(&UnitDef{ID: "queen", Faction: Zerg, HP: 175, Armor: 1, Damage: 9, AttackSpeed: 1100, Range: 5, Speed: 1.3, Size: 16, Vision: 9, Cost: Cost{150, 0}, BuildTime: 36, Supply: 2, ProducedBy: "hatchery", Projectile: "acid", Energy: 25, MaxEnergy: 200, Hotkey: "Q"})
	tt.add(&UnitDef{ID: "overlord", Faction: Zerg, HP: 200, Speed: 0.82, Size: 24, Vision: 11, Cost: Cost{100, 0}, BuildTime: 18, SupplyAdd: 8, ProducedBy: "hatchery", Flying: true, Hotkey: "V"})

	// Terran units
	tt.add(&UnitDef{ID: "scv", Faction: Terran, HP: 45, Damage: 5, AttackSpeed: 1500, Range: 0.5, Speed: 2.8, Size: 11, Vision: 8, Cost: Cost{50, 0}, BuildTime: 12, Supply: 1, ProducedBy: "commandcenter", Harvester: true, Builder: true, Hotkey: "S"})
	tt.add(&UnitDef{ID: "marine", Faction: Terran, HP: 45, Damage: 6, AttackSpeed: 860, Range: 5, Speed: 2.25, Size: 11, Vision: 9, Cost: Cost{50, 0}, BuildTime: 18, Supply: 1, ProducedBy: "barracks", Projectile: "bullet", Abilities: []string{"stim"}, Hotkey: "A"})
	tt.add(&UnitDef{ID: "marauder", Faction: Terran, HP: 125, Armor: 1, Damage: 10, Bonus: armored(10), AttackSpeed: 1500, Range: 6, Speed: 2.25, Size: 14, Vision: 10, Cost: Cost{100, 25}, BuildTime: 21, Supply: 2, ProducedBy: "barracks", Projectile: "grenade", Abilities: []string{"stim"}, Hotkey: "D"})
	tt.add(&UnitDef{ID: "reaper", Faction: Terran, HP: 60, Damage: 4, Hits: 2, AttackSpeed: 1100, Range: 5, Speed: 4, Size: 11, Vision: 9, Cost: Cost{50, 50}, BuildTime: 32, Supply: 1, ProducedBy: "barracks", Projectile: "bullet", Hotkey: "R"})
	tt.add(&UnitDef{ID: "hellion", Faction: Terran, HP: 90, Damage: 8, Bonus: light(6), AttackSpeed: 2500, Range: 5, Speed: 4.25, Size: 14, Vision: 10, Cost: Cost{100, 0}, BuildTime: 21, Supply: 2, ProducedBy: "factory", Projectile: "flame", Hotkey: "E"})
	tt.add(&UnitDef{ID: "siegetank", Faction: Terran, HP: 175, Armor: 1, Damage: 15, Bonus: armored(10), AttackSpeed: 1040, Range: 7, Speed: 2.25, Size: 20, Vision: 11, Cost: Cost{150, 125}, BuildTime: 32, Supply: 3, ProducedBy: "factory", Projectile: "shell", Abilities: []string{"siege"}, Siege: &SiegeProfile{Damage: 40, Range: 13, AttackSpeed: 2140, Splash: 40}, Hotkey: "S"})
	tt.add(&UnitDef{ID: "thor", Faction: Terran, HP: 400, Armor: 2, Damage: 30, AttackSpeed: 1280, Range: 7, Speed: 1.87, Size: 32, Vision: 11, Cost: Cost{300, 200}, BuildTime: 43, Supply: 6, ProducedBy: "factory", Prereqs: []string{"armory"}, Projectile: "shell", Splash: 15, Hotkey: "T"})
	tt.add(&UnitDef{ID: "medivac", Faction: Terran, HP: 150, Armor: 1, Speed: 2.75, Size: 18, Vision: 11, Cost: Cost{100, 100}, BuildTime: 30, Supply: 2, ProducedBy: "starport", Flying: true, Energy: 50, MaxEnergy: 200, Hotkey: "D"})
	tt.add(&UnitDef{ID: "viking", Faction: Terran, HP: 135, Damage: 10, Bonus: armored(4), Hits: 2, AttackSpeed: 1430, Range: 9, Speed: 2.75, Size: 16, Vision: 10, Cost: Cost{150, 75}, BuildTime: 30, Supply: 2, ProducedBy: "starport", Flying: true, Projectile: "missile", Hotkey: "V"})

	// Protoss buildings
	tt.addBuilding(&BuildingDef{ID: "nexus", Faction: Protoss, HP: 1000, Shield: 1000, Armor: 1, Size: 45, Vision: 11, Cost: Cost{400, 0}, BuildTime: 71, CanProduce: []string{"probe"}, SupplyAdd: 15, Base: true, Hotkey: "N"})
	tt.addBuilding(&BuildingDef{ID: "pylon", Faction: Protoss, HP: 200, Shield: 200, Size: 20, Vision: 9, Cost: Cost{100, 0}, BuildTime: 18, SupplyAdd: 8, Hotkey: "E"})
	tt.addBuilding(&BuildingDef{ID: "gateway", Faction: Protoss, HP: 500, Shield: 500, Armor: 1, Size: 32, Vision: 9, Cost: Cost{150, 0}, BuildTime: 46, CanProduce: []string{"zealot", "stalker", "sentry"}, Hotkey: "G"})
	tt.addBuilding(&BuildingDef{ID: "cybercore", Faction: Protoss, HP: 550, Shield: 550, Armor: 1, Size: 26, Vision: 9, Cost: Cost{150, 0}, BuildTime: 36, Prereqs: []string{"gateway"}, Hotkey: "Y"})
	tt.addBuilding(&BuildingDef{ID: "forge", Faction: Protoss, HP: 400, Shield: 400, Armor: 1, Size: 26, Vision: 9, Cost: Cost{150, 0}, BuildTime: 32, Hotkey: "F"})
	tt.addBuilding(&BuildingDef{ID: "robo", Faction: Protoss, HP: 450, Shield: 450, Armor: 1, Size: 32, Vision: 9, Cost: Cost{200, 100}, BuildTime: 46, Prereqs: []string{"cybercore"}, CanProduce: []string{"immortal", "colossus"}, Hotkey: "R"})
	tt.addBuilding(&BuildingDef{ID: "robobay", Faction: Protoss, HP: 500, Shield: 500, Armor: 1, Size: 28, Vision: 9, Cost: Cost{200, 200}, BuildTime: 46, Prereqs: []string{"robo"}, Hotkey: "B"})
	// TODO: stargate has no air units to train until phoenix and void ray get definitions.
	tt.addBuilding(&BuildingDef{ID: "stargate", Faction: Protoss, HP: 500, Shield: 500, Armor: 1, Size: 32, Vision: 9, Cost: Cost{150, 150}, BuildTime: 43, Prereqs: []string{"cybercore"}, Hotkey: "S"})
	tt.addBuilding(&BuildingDef{ID: "assimilator", Faction: Protoss, HP: 450, Shield: 450, Armor: 1, Size: 24, Vision: 9, Cost: Cost{75, 0}, BuildTime: 21, OnGeyser: true, Hotkey: "A"})

	// Zerg buildings
	tt.addBuilding(&BuildingDef{ID: "hatchery", Faction: Zerg, HP: 1500, Armor: 1, Size: 50, Vision: 11, Cost: Cost{300, 0}, BuildTime: 71, CanProduce: []string{"drone", "zergling", "roach", "hydralisk", "mutalisk", "ultralisk", "queen", "overlord"}, SupplyAdd: 6, Base: true, Hotkey: "H"})
	tt.addBuilding(&BuildingDef{ID: "pool", Faction: Zerg, HP: 1000, Armor: 1, Size: 32, Vision: 9, Cost: Cost{200, 0}, BuildTime: 46, Hotkey: "S"})
	tt.addBuilding(&BuildingDef{ID: "warren", Faction: Zerg, HP: 850, Armor: 1, Size: 26, Vision: 9, Cost: Cost{150, 0}, BuildTime: 39, Prereqs: []string{"pool"}, Hotkey: "R"})
	tt.addBuilding(&BuildingDef{ID: "den", Faction: Zerg, HP: 850, Armor: 1, Size: 28, Vision: 9, Cost: Cost{100, 100}, BuildTime: 29, Prereqs: []string{"pool"}, Hotkey: "H"})
	tt.addBuilding(&BuildingDef{ID: "spire", Faction: Zerg, HP: 850, Armor: 1, Size: 32, Vision: 9, Cost: Cost{200, 200}, BuildTime: 71, Prereqs: []string{"pool"}, Hotkey: "S"})
	tt.addBuilding(&BuildingDef{ID: "cavern", Faction: Zerg, HP: 850, Armor: 1, Size: 36, Vision: 9, Cost: Cost{150, 200}, BuildTime: 46, Prereqs: []string{"pool"}, Hotkey: "U"})
	tt.addBuilding(&BuildingDef{ID: "extractor", Faction: Zerg, HP: 500, Armor: 1, Size: 24, Vision: 9, Cost: Cost{25, 0}, BuildTime: 21, OnGeyser: true, ConsumeWorker: true, Hotkey: "E"})

	// Terran buildings
	tt.addBuilding(&BuildingDef{ID: "commandcenter", Faction: Terran, HP: 1500, Armor: 1, Size: 50, Vision: 11, Cost: Cost{400, 0}, BuildTime: 71, CanProduce: []string{"scv"}, SupplyAdd: 15, Base: true, Hotkey: "C"})
	tt.addBuilding(&BuildingDef{ID: "supplydepot", Faction: Terran, HP: 400, Armor: 1, Size: 20, Vision: 9, Cost: Cost{100, 0}, BuildTime: 21, SupplyAdd: 8, Hotkey: "S"})
	tt.addBuilding(&BuildingDef{ID: "barracks", Faction: Terran, HP: 1000, Armor: 1, Size: 36, Vision: 9, Cost: Cost{150, 0}, BuildTime: 46, Prereqs: []string{"supplydepot"}, CanProduce: []string{"marine", "marauder", "reaper"}, Hotkey: "B"})
	tt.addBuilding(&BuildingDef{ID: "engineeringbay", Faction: Terran, HP: 850, Armor: 1, Size: 28, Vision: 9, Cost: Cost{125, 0}, BuildTime: 25, Hotkey: "E"})
	tt.addBuilding(&BuildingDef{ID: "factory", Faction: Terran, HP: 1250, Armor: 1, Size: 36, Vision: 9, Cost: Cost{150, 100}, BuildTime: 43, Prereqs: []string{"barracks"}, CanProduce: []string{"hellion", "siegetank", "thor"}, Hotkey: "F"})
	tt.addBuilding(&BuildingDef{ID: "armory", Faction: Terran, HP: 750, Armor: 1, Size: 28, Vision: 9, Cost: Cost{150, 100}, BuildTime: 46, Prereqs: []string{"factory"}, Hotkey: "A"})
	tt.addBuilding(&BuildingDef{ID: "starport", Faction: Terran, HP: 1300, Armor: 1, Size: 36, Vision: 9, Cost: Cost{150, 100}, BuildTime: 36, Prereqs: []string{"factory"}, CanProduce: []string{"medivac", "viking"}, Hotkey: "S"})
	tt.addBuilding(&BuildingDef{ID: "refinery", Faction: Terran, HP: 500, Armor: 1, Size: 24, Vision: 9, Cost: Cost{75, 0}, BuildTime: 21, OnGeyser: true, Hotkey: "R"})

	return tt
}

func (tt *TechTree) add(u *UnitDef) {
	tt.Units[u.ID] = u
}

func (tt *TechTree) addBuilding(b *BuildingDef) {
	tt.Buildings[b.ID] = b
}
