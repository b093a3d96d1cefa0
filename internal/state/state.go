// Package state provides thread-safe state management for the application.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-globe/internal/globe"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventLocationAdded   EventType = "LOCATION_ADDED"
	EventLocationRemoved EventType = "LOCATION_REMOVED"
	EventCountChanged    EventType = "COUNT_CHANGED"
	EventLandLoaded      EventType = "LAND_LOADED"
	EventLandFallback    EventType = "LAND_FALLBACK"
	EventLoadFailed      EventType = "LOAD_FAILED"
)

// Event represents a change in the loaded data.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Location  string    `json:"location,omitempty"`
	OldCount  int       `json:"old_count,omitempty"`
	NewCount  int       `json:"new_count,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Manager handles all shared application state with thread-safe access.
// Loaders write to it from their goroutines; frontends read snapshots.
type Manager struct {
	mu sync.RWMutex

	// Current state
	locations    []*globe.Location
	land         globe.LandState
	revision     uint64
	hasLocations bool
	lastLoad     time.Time
	lastError    error
	loadDuration time.Duration

	// Previous counts for event detection
	prevCounts map[string]int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	// Configuration
	reloadInterval time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEvents      int
	ReloadInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents:      50,
		ReloadInterval: 0, // load once
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		land:           globe.UnloadedLand(),
		maxEvents:      maxEvents,
		events:         make([]Event, 0, maxEvents),
		reloadInterval: cfg.ReloadInterval,
		prevCounts:     make(map[string]int),
	}
}

// UpdateLocations records a location load. On error the previous
// collection is kept.
func (m *Manager) UpdateLocations(locs []*globe.Location, loadDuration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastLoad = time.Now()
	m.lastError = err
	m.loadDuration = loadDuration

	if err != nil {
		m.addEvent(Event{Type: EventLoadFailed, Timestamp: m.lastLoad, Detail: err.Error()})
		return
	}

	m.detectEvents(locs)
	m.locations = locs
	m.hasLocations = true
	m.revision++
}

// SetLand records a land state change.
func (m *Manager) SetLand(land globe.LandState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.land = land
	m.revision++

	switch land.Status {
	case globe.LandLoaded:
		m.addEvent(Event{Type: EventLandLoaded, Timestamp: time.Now(), NewCount: len(land.Rings)})
	case globe.LandFailed:
		m.addEvent(Event{Type: EventLandFallback, Timestamp: time.Now(), NewCount: len(land.Rings)})
	}
}

// locationKey identifies a location across loads.
func locationKey(l *globe.Location) string {
	if l.Key != "" {
		return l.Key
	}
	return l.Label
}

// detectEvents compares the new collection with the previous one.
// The first load establishes the baseline without events.
func (m *Manager) detectEvents(locs []*globe.Location) {
	now := time.Now()
	next := make(map[string]int, len(locs))
	for _, l := range locs {
		next[locationKey(l)] += l.Count
	}

	if m.hasLocations {
		for _, l := range locs {
			key := locationKey(l)
			newCount := next[key]
			oldCount, existed := m.prevCounts[key]
			switch {
			case !existed:
				m.addEvent(Event{Type: EventLocationAdded, Timestamp: now, Location: key, NewCount: newCount})
			case oldCount != newCount:
				m.addEvent(Event{Type: EventCountChanged, Timestamp: now, Location: key, OldCount: oldCount, NewCount: newCount})
			}
			// Report each key once.
			m.prevCounts[key] = newCount
		}
		for key, oldCount := range m.prevCounts {
			if _, ok := next[key]; !ok {
				m.addEvent(Event{Type: EventLocationRemoved, Timestamp: now, Location: key, OldCount: oldCount})
			}
		}
	}

	m.prevCounts = next
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state. The
// location slice is shared; treat it as read-only.
type Snapshot struct {
	Locations    []*globe.Location
	Land         globe.LandState
	Revision     uint64
	LastLoad     time.Time
	LastError    error
	LoadDuration time.Duration
	Events       []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Locations:    m.locations,
		Land:         m.land,
		Revision:     m.revision,
		LastLoad:     m.lastLoad,
		LastError:    m.lastError,
		LoadDuration: m.loadDuration,
		Events:       m.getEventsOrdered(),
	}
}

// Revision increases on every successful data or land change.
func (m *Manager) Revision() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.revision
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// ReloadInterval returns how often locations are re-read; zero means once.
func (m *Manager) ReloadInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reloadInterval
}

// HasData returns true once a location load has succeeded.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hasLocations
}
