package chain

import (
	"sync"

	"github.com/agnivade/levenshtein"

	walleterr "github.com/itani-network/kobswallet/pkg/errors"
)

// maxSuggestionDistance is the levenshtein cutoff for "did you mean" hints
// on unknown chain identifiers.
const maxSuggestionDistance = 3

// Registry holds one adapter instance per supported chain identifier.
// Individual adapters can be swapped at runtime (testnet/mainnet switch)
// without disturbing the other chains.
type Registry struct {
	mu       sync.RWMutex
	adapters map[ID]Adapter
	order    []ID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[ID]Adapter),
	}
}

// Register adds an adapter for its chain ID. Registration order is
// preserved for listing.
func (r *Registry) Register(a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := a.ID()
	if _, exists := r.adapters[id]; !exists {
		r.order = append(r.order, id)
	}
	r.adapters[id] = a
}

// Replace swaps the adapter stored for one chain ID, leaving every other
// chain untouched. Used when the native chain flips between network modes.
func (r *Registry) Replace(id ID, a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.adapters[id]; !exists {
		r.order = append(r.order, id)
	}
	r.adapters[id] = a
}

// Resolve returns the adapter for a chain ID.
func (r *Registry) Resolve(id ID) (Adapter, error) {
	r.mu.RLock()
	a, ok := r.adapters[id]
	r.mu.RUnlock()

	if !ok {
		return nil, r.unknownChain(id)
	}
	return a, nil
}

// Extended returns the adapter for a chain ID if it implements the extended
// capability set. Other chains fail with UNSUPPORTED_OPERATION naming the
// required chain instead of a runtime type assumption.
func (r *Registry) Extended(id ID) (ExtendedAdapter, error) {
	a, err := r.Resolve(id)
	if err != nil {
		return nil, err
	}

	ext, ok := a.(ExtendedAdapter)
	if !ok {
		return nil, walleterr.WithDetails(walleterr.ErrUnsupportedOperation, map[string]string{
			"chain":    id.String(),
			"required": Itani.String(),
		})
	}
	return ext, nil
}

// Chains returns the registered chain IDs in registration order.
func (r *Registry) Chains() []ID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ID, len(r.order))
	copy(out, r.order)
	return out
}

// unknownChain builds an UNKNOWN_CHAIN error, suggesting the closest
// registered identifier when one is within edit distance.
func (r *Registry) unknownChain(id ID) error {
	err := walleterr.WithDetails(walleterr.ErrUnknownChain, map[string]string{
		"chain": id.String(),
	})

	r.mu.RLock()
	defer r.mu.RUnlock()

	best := ""
	bestDist := maxSuggestionDistance + 1
	for _, known := range r.order {
		if d := levenshtein.ComputeDistance(id.String(), known.String()); d < bestDist {
			best = known.String()
			bestDist = d
		}
	}
	if best != "" {
		err = walleterr.WithSuggestion(err, "did you mean '"+best+"'?")
	}
	return err
}
