// internal/scraper/registry.go
package scraper

import (
	"sort"

	"github.com/valpere/StageScrapexter/pkg/types"
)

// Registry is the merge store for production sightings, keyed by id. The
// same physical production appears under multiple (category, season)
// listings and must collapse to one record: scalar fields are
// first-writer-wins, membership sets only grow, and the youth flag is ORed
// across sightings. The registry is populated sequentially during the index
// phase and read-only afterwards.
type Registry struct {
	records map[string]*record
	order   []string
}

// record is one production's accumulated state during the index phase.
type record struct {
	stub       types.ProductionStub
	seasons    map[string]struct{}
	categories map[string]struct{}
	youth      bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		records: make(map[string]*record),
	}
}

// Upsert absorbs one sighting of a production. On first sighting the
// candidate stub's scalar fields are kept verbatim; on later sightings they
// are left untouched and only the membership sets and the youth flag merge.
func (r *Registry) Upsert(id string, candidate types.ProductionStub, season, category string, youth bool) {
	rec, ok := r.records[id]
	if !ok {
		candidate.ID = id
		rec = &record{
			stub:       candidate,
			seasons:    make(map[string]struct{}),
			categories: make(map[string]struct{}),
		}
		r.records[id] = rec
		r.order = append(r.order, id)
	}

	rec.seasons[season] = struct{}{}
	rec.categories[category] = struct{}{}
	rec.youth = rec.youth || youth
}

// Len returns the number of distinct productions seen so far.
func (r *Registry) Len() int {
	return len(r.records)
}

// Get returns the merged stub for an id, or false if the id is unknown.
func (r *Registry) Get(id string) (types.ProductionStub, bool) {
	rec, ok := r.records[id]
	if !ok {
		return types.ProductionStub{}, false
	}
	return rec.snapshot(), true
}

// Productions materializes one Production per registry entry, in first-seen
// order, with detail fields zeroed. The caller owns the returned slice; the
// detail phase fills each slot independently.
func (r *Registry) Productions() []*types.Production {
	productions := make([]*types.Production, 0, len(r.order))
	for _, id := range r.order {
		productions = append(productions, &types.Production{
			ProductionStub: r.records[id].snapshot(),
		})
	}
	return productions
}

// snapshot renders the record's membership sets as sorted slices.
func (rec *record) snapshot() types.ProductionStub {
	stub := rec.stub
	stub.Seasons = sortedKeys(rec.seasons)
	stub.Categories = sortedKeys(rec.categories)
	stub.IsFeaturedForYouth = rec.youth
	return stub
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
