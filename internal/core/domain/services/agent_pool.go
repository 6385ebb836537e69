package services

import (
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/agent"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// ErrPoolIsEmpty is returned by ClaimNearest when every agent has been claimed.
var ErrPoolIsEmpty = errors.New("agent pool is empty")

// AgentPool is the set of agents still available to one warehouse during one run.
// Claiming an agent removes it, so each agent is handed out at most once.
//
// A pool is owned by a single goroutine: the sequential order loop of its warehouse.
// It is not safe for concurrent use and must not be shared between warehouses.
type AgentPool struct {
	warehouseID kernel.UUID
	agents      []*agent.Agent
}

// Candidate is an agent together with its distance to the location being served.
type Candidate struct {
	Agent    *agent.Agent
	Distance float64
}

// NewAgentPool builds the pool of a warehouse. Every agent must be checked in and
// belong to warehouseID.
func NewAgentPool(warehouseID kernel.UUID, agents []*agent.Agent) (*AgentPool, error) {
	if err := warehouseID.Validate(); err != nil {
		return nil, err
	}

	pool := &AgentPool{
		warehouseID: warehouseID,
		agents:      make([]*agent.Agent, 0, len(agents)),
	}

	for _, a := range agents {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if !a.WarehouseID().IsEqual(warehouseID) {
			return nil, errs.NewValueIsInvalidErrorWithCause("agent",
				fmt.Errorf("agent %s does not belong to warehouse %s", a.ID(), warehouseID))
		}
		if !a.IsAvailable() {
			return nil, errs.NewValueIsInvalidErrorWithCause("agent",
				fmt.Errorf("agent %s is %s, not %s", a.ID(), a.Status(), agent.CheckedIn))
		}
		pool.agents = append(pool.agents, a)
	}

	return pool, nil
}

func (p *AgentPool) WarehouseID() kernel.UUID {
	return p.warehouseID
}

// Len returns the number of agents still available.
func (p *AgentPool) Len() int {
	return len(p.agents)
}

// IsEmpty reports whether no agent is left.
func (p *AgentPool) IsEmpty() bool {
	return len(p.agents) == 0
}

// Nearest returns every remaining agent ordered by distance to target, closest first.
// Equal distances are ordered by agent id, lower first. The pool is not modified.
func (p *AgentPool) Nearest(target kernel.Location) ([]Candidate, error) {
	candidates := make([]Candidate, 0, len(p.agents))
	for _, a := range p.agents {
		d, err := target.DistanceTo(a.Location())
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, Candidate{Agent: a, Distance: d})
	}

	sortCandidates(candidates)
	return candidates, nil
}

// ClaimNearest removes and returns the closest agent to target together with the distance.
// It returns ErrPoolIsEmpty when nothing is left.
func (p *AgentPool) ClaimNearest(target kernel.Location) (Candidate, error) {
	if p.IsEmpty() {
		return Candidate{}, ErrPoolIsEmpty
	}

	candidates, err := p.Nearest(target)
	if err != nil {
		return Candidate{}, err
	}

	best := candidates[0]
	p.remove(best.Agent.ID())
	return best, nil
}

func (p *AgentPool) remove(agentID kernel.UUID) {
	if i := p.indexOf(agentID); i >= 0 {
		p.agents = append(p.agents[:i], p.agents[i+1:]...)
	}
}

func (p *AgentPool) indexOf(agentID kernel.UUID) int {
	for i, a := range p.agents {
		if a.ID().IsEqual(agentID) {
			return i
		}
	}
	return -1
}
