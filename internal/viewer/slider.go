// Package viewer holds the before/after comparison logic: the reveal
// position, the drag session state machine and artifact selection.
package viewer

import "sync"

// Position maps a pointer x coordinate to a reveal percentage in [0, 100].
func Position(pointerX, containerLeft, containerWidth float64) float64 {
	if containerWidth <= 0 {
		return 0
	}
	p := (pointerX - containerLeft) / containerWidth * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

type Bounds struct {
	Left, Top, Width, Height float64
}

func (b Bounds) Contains(x, y float64) bool {
	return x >= b.Left && x <= b.Left+b.Width && y >= b.Top && y <= b.Top+b.Height
}

// PointerSource delivers document-wide move and release events.
type PointerSource interface {
	Subscribe(onMove func(x float64), onRelease func()) (unsubscribe func())
}

type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Slider tracks one comparison's reveal position. A drag starts with a press
// inside the container and listens to the global source until release, so
// releasing outside the container still ends it. Slider is driven from a
// single event loop and is not safe for concurrent use.
type Slider struct {
	bounds      Bounds
	source      PointerSource
	state       State
	position    float64
	unsubscribe func()
}

func NewSlider(bounds Bounds, source PointerSource) *Slider {
	return &Slider{bounds: bounds, source: source, position: 50}
}

func (s *Slider) Position() float64 { return s.position }
func (s *Slider) State() State       { return s.state }

// Press starts a drag session when (x, y) is inside the container. It
// reports whether a session is active afterwards.
func (s *Slider) Press(x, y float64) bool {
	if s.state == Dragging {
		return true
	}
	if !s.bounds.Contains(x, y) {
		return false
	}
	s.state = Dragging
	s.position = Position(x, s.bounds.Left, s.bounds.Width)
	s.unsubscribe = s.source.Subscribe(s.Move, s.Release)
	return true
}

// Move updates the position while a session is active.
func (s *Slider) Move(x float64) {
	if s.state != Dragging {
		return
	}
	s.position = Position(x, s.bounds.Left, s.bounds.Width)
}

// Release ends the session wherever the pointer is.
func (s *Slider) Release() {
	if s.state != Dragging {
		return
	}
	s.state = Idle
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Close tears the slider down, ending any active session.
func (s *Slider) Close() {
	s.Release()
}

// Broadcaster is a PointerSource that fans events out to its subscribers.
type Broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]subscriber
}

type subscriber struct {
	onMove    func(float64)
	onRelease func()
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]subscriber)}
}

func (b *Broadcaster) Subscribe(onMove func(x float64), onRelease func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.subs[id] = subscriber{onMove: onMove, onRelease: onRelease}

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
		})
	}
}

func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *Broadcaster) Move(x float64) {
	for _, s := range b.snapshot() {
		s.onMove(x)
	}
}

func (b *Broadcaster) Release() {
	for _, s := range b.snapshot() {
		s.onRelease()
	}
}

// snapshot lets callbacks unsubscribe without deadlocking.
func (b *Broadcaster) snapshot() []subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]subscriber, 0, len(b.subs))
	for _, s := range b.subs {
		out = append(out, s)
	}
	return out
}
