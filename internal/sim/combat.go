package sim

// Kind is the closed set of actor tags. Combat eligibility is looked up in a
// table rather than derived from the Go type of the actor.
type Kind int

const (
	KindNone Kind = iota
	KindPlayer
	KindEnemy

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "Player"
	case KindEnemy:
		return "Enemy"
	default:
		return "None"
	}
}

// ParseKind maps a level-file tag to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "Player", "player":
		return KindPlayer, true
	case "Enemy", "enemy":
		return KindEnemy, true
	default:
		return KindNone, false
	}
}

// hostile[attacker][defender] lists the pairs that fight.
var hostile = [kindCount][kindCount]bool{
	KindPlayer: {KindEnemy: true},
	KindEnemy:  {KindPlayer: true},
}

// CanAttack reports whether an attacker of kind a may hit a defender of kind b.
func CanAttack(a, b Kind) bool {
	if a < 0 || a >= kindCount || b < 0 || b >= kindCount {
		return false
	}
	return hostile[a][b]
}

// Dice is the randomness source for combat rewards and enemy decisions.
// *math/rand.Rand satisfies it.
type Dice interface {
	Intn(n int) int
}

// resolveCombat runs one attack from the moving actor against the occupant of
// the cell it tried to enter. The mover never ends up on the cell.
func (a *Arena) resolveCombat(attacker, defender *Actor) {
	reward := attacker.Attack(defender, a.dice)
	attacker.GiveEnergy(reward)

	a.logger.Debug("combat",
		"attacker", attacker.Name(),
		"defender", defender.Name(),
		"reward", reward,
		"defender_energy", defender.Energy(),
		"defender_lives", defender.Lives(),
	)
}
