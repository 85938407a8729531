package sim

// Enemy decision outcomes. The fifth outcome is a deliberate wait, so an
// enemy stands still on roughly one tick in five even with a clear path.
const (
	actLeft = iota
	actUp
	actRight
	actDown
	actWait

	actOutcomes
)

// Tick runs one decision step for every enemy in roster order. Enemies move
// one after another, so later enemies see the earlier ones' new positions.
func (a *Arena) Tick() {
	for _, e := range a.enemies {
		a.Act(e)
	}
}

// Act rolls one action for the enemy and performs it only if it brings the
// enemy closer to the player on that axis.
func (a *Arena) Act(enemy *Actor) {
	if a.player == nil {
		return
	}
	target := a.player.Position()

	switch a.dice.Intn(actOutcomes) {
	case actLeft:
		if target.X < enemy.X() {
			enemy.MoveLeft()
		}
	case actUp:
		if target.Y < enemy.Y() {
			enemy.MoveUp()
		}
	case actRight:
		if target.X > enemy.X() {
			enemy.MoveRight()
		}
	case actDown:
		if target.Y > enemy.Y() {
			enemy.MoveDown()
		}
	}
}
