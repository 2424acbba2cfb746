package simulation

// State is one behaviour of an agent of type A. Enter runs once, right
// after the state becomes current; Update runs every tick while it is.
type State[A any] interface {
	Name() string
	Enter(agent A, w *World)
	Update(agent A, w *World, dt float64)
}

// Machine holds the single active state of an agent.
type Machine[A any] struct {
	current     State[A]
	timeInState float64
}

// Switch installs next and runs its Enter before returning, so enter side
// effects always happen before the next Update.
func (m *Machine[A]) Switch(agent A, w *World, next State[A]) {
	m.current = next
	m.timeInState = 0
	next.Enter(agent, w)
}

func (m *Machine[A]) Update(agent A, w *World, dt float64) {
	if m.current == nil {
		return
	}
	m.timeInState += dt
	m.current.Update(agent, w, dt)
}

// Name of the active state, "" before the first Switch.
func (m *Machine[A]) Name() string {
	if m.current == nil {
		return ""
	}
	return m.current.Name()
}

// TimeInState is the simulated time spent since the last Switch.
func (m *Machine[A]) TimeInState() float64 { return m.timeInState }
