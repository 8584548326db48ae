package domain

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// Player is a remote HTTP service taking part in the game.
type Player struct {
	ID   string
	Name string
	URL  string

	mu  sync.RWMutex
	log []LogLine // oldest first; Log() reverses
}

// NewPlayer validates the endpoint and returns a player with an empty log.
func NewPlayer(id, name, endpoint string) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidPlayer)
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlayer, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: endpoint %q is not an http url", ErrInvalidPlayer, endpoint)
	}
	return &Player{ID: id, Name: name, URL: endpoint}, nil
}

// LogResult appends a line; it becomes the newest entry of Log.
func (p *Player) LogResult(line LogLine) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log = append(p.log, line)
}

// Log returns a copy of the log, newest first.
func (p *Player) Log() []LogLine {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]LogLine, len(p.log))
	for i, line := range p.log {
		out[len(p.log)-1-i] = line
	}
	return out
}

// Score sums the points awarded across the whole log.
func (p *Player) Score() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	total := 0
	for _, line := range p.log {
		total += line.Points
	}
	return total
}

// LastResult is the result of the most recent dispatch, or "" before the first one.
func (p *Player) LastResult() Result {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.log) == 0 {
		return ""
	}
	return p.log[len(p.log)-1].Result
}

func (p *Player) String() string {
	return p.Name + " (" + p.URL + ")"
}
