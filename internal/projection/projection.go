// Package projection publishes the current ledger aggregates and advisory
// state as a single observable snapshot. One writer updates the snapshot
// under a lock and fans it out; readers always see one consistent snapshot,
// never a partial update across slots.
package projection

import (
	"sync"

	"fintrack/internal/models"
	"fintrack/internal/money"
)

// Snapshot is the full published state. Slices are replaced wholesale on
// publish and must not be mutated by consumers.
type Snapshot struct {
	Accounts     []models.Account     `json:"accounts"`
	Categories   []models.Category    `json:"categories"`
	Books        []models.Book        `json:"books"`
	Transactions []models.Transaction `json:"transactions"`

	TodayStats   models.TodayStats   `json:"today_stats"`
	MonthlyStats models.MonthlyStats `json:"monthly_stats"`

	MonthlyBudget   money.Money        `json:"monthly_budget"`
	RemainingBudget money.Money        `json:"remaining_budget"`
	BudgetUsage     models.BudgetUsage `json:"budget_usage"`

	// Advisory state. Error holds a user-facing message template and is
	// cleared only by an explicit ClearError, never by expiry.
	IsLoading bool   `json:"is_loading"`
	Error     string `json:"error"`
	Insight   string `json:"insight"`
	Report    string `json:"report"`

	// Version increments on every publish.
	Version uint64 `json:"version"`
}

// Projector is the single-writer observable store for Snapshot.
type Projector struct {
	mu     sync.RWMutex
	snap   Snapshot
	subs   map[int]chan Snapshot
	nextID int
}

// NewProjector creates an empty projector.
func NewProjector() *Projector {
	return &Projector{subs: make(map[int]chan Snapshot)}
}

// Publish applies the mutation to the current snapshot and notifies every
// subscriber. Subscriber channels hold only the latest snapshot: a slow
// subscriber's stale value is replaced, not queued behind.
func (p *Projector) Publish(apply func(*Snapshot)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	apply(&p.snap)
	p.snap.Version++
	snap := p.snap

	// Sends are non-blocking against buffered channels, so fanning out under
	// the lock cannot stall and cannot race a concurrent cancel.
	for _, ch := range p.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

// Snapshot returns the current snapshot. Reading two slots from the
// returned value is always consistent.
func (p *Projector) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

// Subscribe registers an observer and returns its channel together with a
// cancel function. The current snapshot is delivered immediately.
func (p *Projector) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = ch
	ch <- p.snap
	p.mu.Unlock()

	cancel := func() {
		p.mu.Lock()
		if _, ok := p.subs[id]; ok {
			delete(p.subs, id)
			close(ch)
		}
		p.mu.Unlock()
	}
	return ch, cancel
}

// ClearError clears the published error slot. This is the only way the
// error expires besides the start of a new advisory cycle.
func (p *Projector) ClearError() {
	p.Publish(func(s *Snapshot) { s.Error = "" })
}
