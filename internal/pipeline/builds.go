package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"
)

// BuildStatus represents the state of a site build.
type BuildStatus string

const (
	StatusRunning   BuildStatus = "running"
	StatusSucceeded BuildStatus = "succeeded"
	StatusFailed    BuildStatus = "failed"
)

// Build tracks one resolution of the site's navigation.
type Build struct {
	mu sync.Mutex

	ID      string      `json:"build_id"`
	Trigger string      `json:"trigger"` // startup, api, poll, cli
	Status  BuildStatus `json:"status"`
	Phase   string      `json:"phase"`

	Docs         int      `json:"docs"`
	Sidebars     []string `json:"sidebars"`
	SidebarsHash string   `json:"sidebars_hash,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	errors []string
}

func newBuild(trigger string) *Build {
	now := time.Now()
	return &Build{
		ID:        newBuildID(),
		Trigger:   trigger,
		Status:    StatusRunning,
		Phase:     "starting",
		StartedAt: now,
		UpdatedAt: now,
	}
}

// SetPhase records progress through a running build.
func (b *Build) SetPhase(phase string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Phase = phase
	b.UpdatedAt = time.Now()
}

// AddError records a build error.
func (b *Build) AddError(err string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.errors = append(b.errors, err)
	b.UpdatedAt = time.Now()
}

// SetResult records what the build produced.
func (b *Build) SetResult(docs int, sidebars []string, sidebarsHash string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Docs = docs
	b.Sidebars = append([]string(nil), sidebars...)
	b.SidebarsHash = sidebarsHash
	b.UpdatedAt = time.Now()
}

// Finish moves the build to a terminal status.
func (b *Build) Finish(status BuildStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	b.Status = status
	b.Phase = string(status)
	b.FinishedAt = now
	b.UpdatedAt = now
}

// BuildSnapshot is a read-only, JSON-safe copy of build state.
type BuildSnapshot struct {
	ID           string      `json:"build_id"`
	Trigger      string      `json:"trigger"`
	Status       BuildStatus `json:"status"`
	Phase        string      `json:"phase"`
	Docs         int         `json:"docs"`
	Sidebars     []string    `json:"sidebars"`
	SidebarsHash string      `json:"sidebars_hash,omitempty"`
	Errors       []string    `json:"errors"`
	StartedAt    time.Time   `json:"started_at"`
	FinishedAt   *time.Time  `json:"finished_at,omitempty"`
	DurationMs   int64       `json:"duration_ms"`
}

// Snapshot returns a JSON-safe copy of the build state.
func (b *Build) Snapshot() BuildSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := BuildSnapshot{
		ID:           b.ID,
		Trigger:      b.Trigger,
		Status:       b.Status,
		Phase:        b.Phase,
		Docs:         b.Docs,
		Sidebars:     append([]string{}, b.Sidebars...),
		SidebarsHash: b.SidebarsHash,
		Errors:       append([]string{}, b.errors...),
		StartedAt:    b.StartedAt,
	}
	end := b.UpdatedAt
	if !b.FinishedAt.IsZero() {
		finished := b.FinishedAt
		s.FinishedAt = &finished
		end = finished
	}
	s.DurationMs = end.Sub(b.StartedAt).Milliseconds()
	return s
}

// BuildStore is a thread-safe in-memory build history with TTL and size
// eviction.
type BuildStore struct {
	mu     sync.Mutex
	builds map[string]*Build
	ttl    time.Duration
	max    int
}

func NewBuildStore(ttl time.Duration, max int) *BuildStore {
	return &BuildStore{
		builds: make(map[string]*Build),
		ttl:    ttl,
		max:    max,
	}
}

func (s *BuildStore) Put(b *Build) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builds[b.ID] = b
}

func (s *BuildStore) Get(id string) *Build {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.builds[id]
}

// List returns snapshots of all retained builds, newest first.
func (s *BuildStore) List() []BuildSnapshot {
	s.mu.Lock()
	builds := make([]*Build, 0, len(s.builds))
	for _, b := range s.builds {
		builds = append(builds, b)
	}
	s.mu.Unlock()

	out := make([]BuildSnapshot, len(builds))
	for i, b := range builds {
		out[i] = b.Snapshot()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// Cleanup removes builds older than the TTL, then the oldest finished
// builds beyond the size limit. Running builds are never evicted.
func (s *BuildStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	var finished []*Build
	for id, b := range s.builds {
		b.mu.Lock()
		running := b.Status == StatusRunning
		updated := b.UpdatedAt
		b.mu.Unlock()
		if running {
			continue
		}
		if s.ttl > 0 && now.Sub(updated) > s.ttl {
			delete(s.builds, id)
			continue
		}
		finished = append(finished, b)
	}
	if s.max <= 0 || len(finished) <= s.max {
		return
	}
	sort.Slice(finished, func(i, j int) bool { return finished[i].ID < finished[j].ID })
	for _, b := range finished[:len(finished)-s.max] {
		delete(s.builds, b.ID)
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
