package goatstore

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/schema"
	"github.com/google/uuid"
)

// MockStore is an in-memory Store for unit tests and dry runs. It mirrors
// the SQL store's query semantics (latest-wins raw scores, per-category
// stats, upsert-in-place final scores) without a database.
type MockStore struct {
	mu sync.RWMutex

	categories    map[uuid.UUID]schema.Category
	subcategories map[uuid.UUID]schema.SubCategory
	entities      map[uuid.UUID]schema.Entity
	components    map[uuid.UUID]schema.ScoringComponent
	models        map[uuid.UUID]schema.ScoringModel
	weights       map[uuid.UUID][]schema.ScoringWeight // by model
	rawScores     []schema.RawScore
	rawSeq        int64
	eras          map[uuid.UUID]schema.Era
	eraFactors    map[[2]uuid.UUID]schema.EraFactor // (era, component)
	experts       map[uuid.UUID]schema.Expert
	domains       map[[2]uuid.UUID]float64 // (expert, category)
	expertVotes   []schema.ExpertVote
	fanVotes      map[[3]uuid.UUID]schema.FanVote // (user, entity, category)
	fanVersions   []schema.FanVoteVersion
	fanAggregates map[[2]uuid.UUID]schema.FanVoteAggregate // (entity, category)
	infSources    map[uuid.UUID]schema.InfluenceSource
	infEvents     []schema.InfluenceEvent
	infModels     map[uuid.UUID]schema.InfluenceModel
	infScores     map[[2]uuid.UUID]schema.InfluenceScore // (entity, model)
	finalScores   map[[2]uuid.UUID]schema.FinalScore     // (entity, model)
	snapshots     map[uuid.UUID]schema.RankingSnapshot
}

var (
	_ contract.Store  = (*MockStore)(nil) // Compile-time check
	_ contract.Seeder = (*MockStore)(nil) // Compile-time check
)

// NewMockStore returns an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{
		categories:    make(map[uuid.UUID]schema.Category),
		subcategories: make(map[uuid.UUID]schema.SubCategory),
		entities:      make(map[uuid.UUID]schema.Entity),
		components:    make(map[uuid.UUID]schema.ScoringComponent),
		models:        make(map[uuid.UUID]schema.ScoringModel),
		weights:       make(map[uuid.UUID][]schema.ScoringWeight),
		eras:          make(map[uuid.UUID]schema.Era),
		eraFactors:    make(map[[2]uuid.UUID]schema.EraFactor),
		experts:       make(map[uuid.UUID]schema.Expert),
		domains:       make(map[[2]uuid.UUID]float64),
		fanVotes:      make(map[[3]uuid.UUID]schema.FanVote),
		fanAggregates: make(map[[2]uuid.UUID]schema.FanVoteAggregate),
		infSources:    make(map[uuid.UUID]schema.InfluenceSource),
		infModels:     make(map[uuid.UUID]schema.InfluenceModel),
		infScores:     make(map[[2]uuid.UUID]schema.InfluenceScore),
		finalScores:   make(map[[2]uuid.UUID]schema.FinalScore),
		snapshots:     make(map[uuid.UUID]schema.RankingSnapshot),
	}
}

// --- Categories / Entities / Components ---

func (m *MockStore) GetCategory(_ context.Context, id uuid.UUID) (*schema.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.categories[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (m *MockStore) ListEntities(_ context.Context, categoryID uuid.UUID) ([]schema.Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []schema.Entity
	for _, e := range m.entities {
		if e.CategoryID == categoryID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockStore) GetEntity(_ context.Context, id uuid.UUID) (*schema.Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entities[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (m *MockStore) ListComponents(_ context.Context) ([]schema.ScoringComponent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]schema.ScoringComponent, 0, len(m.components))
	for _, c := range m.components {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

// --- Scoring models ---

func (m *MockStore) GetScoringModel(_ context.Context, id uuid.UUID) (*schema.ScoringModel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sm, ok := m.models[id]; ok {
		return &sm, nil
	}
	return nil, nil
}

func (m *MockStore) GetActiveScoringModel(_ context.Context, categoryID uuid.UUID) (*schema.ScoringModel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, sm := range m.models {
		if sm.CategoryID == categoryID && sm.IsActive {
			return &sm, nil
		}
	}
	return nil, nil
}

func (m *MockStore) CreateScoringModel(_ context.Context, model *schema.ScoringModel, weights []schema.ScoringWeight) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.models[model.ID] = *model
	m.weights[model.ID] = append([]schema.ScoringWeight(nil), weights...)
	return nil
}

func (m *MockStore) ListModelWeights(_ context.Context, modelID uuid.UUID) ([]schema.ScoringWeight, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]schema.ScoringWeight(nil), m.weights[modelID]...), nil
}

// --- Raw scores ---

func (m *MockStore) InsertRawScore(_ context.Context, raw *schema.RawScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rawSeq++
	raw.Seq = m.rawSeq
	if raw.ID == uuid.Nil {
		raw.ID = uuid.New()
	}
	if raw.CreatedAt.IsZero() {
		raw.CreatedAt = time.Now().UTC()
	}
	m.rawScores = append(m.rawScores, *raw)
	return nil
}

func (m *MockStore) GetLatestRawScore(_ context.Context, entityID, componentID uuid.UUID) (*schema.RawScore, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latestLocked(entityID, componentID), nil
}

// latestLocked implements "latest wins": newest created_at, ties broken by
// highest insertion seq.
func (m *MockStore) latestLocked(entityID, componentID uuid.UUID) *schema.RawScore {
	var best *schema.RawScore
	for i := range m.rawScores {
		rs := &m.rawScores[i]
		if rs.EntityID != entityID || rs.ComponentID != componentID {
			continue
		}
		if best == nil || rs.CreatedAt.After(best.CreatedAt) ||
			(rs.CreatedAt.Equal(best.CreatedAt) && rs.Seq > best.Seq) {
			best = rs
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}

func (m *MockStore) GetComponentStats(_ context.Context, categoryID, componentID uuid.UUID) (*schema.ComponentStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var values []float64
	for _, e := range m.entities {
		if e.CategoryID != categoryID {
			continue
		}
		if latest := m.latestLocked(e.ID, componentID); latest != nil {
			values = append(values, latest.Value)
		}
	}
	stats := &schema.ComponentStats{Count: len(values)}
	if len(values) == 0 {
		return stats, nil
	}

	stats.Min, stats.Max = values[0], values[0]
	var sum float64
	for _, v := range values {
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
		sum += v
	}
	stats.Mean = sum / float64(len(values))
	var varSum float64
	for _, v := range values {
		d := v - stats.Mean
		varSum += d * d
	}
	if len(values) > 1 && varSum > 0 {
		stats.StdDev = math.Sqrt(varSum / float64(len(values)))
	}
	return stats, nil
}

func (m *MockStore) ListEraRawValues(_ context.Context, eraID, componentID uuid.UUID) ([]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []float64
	for _, rs := range m.rawScores {
		if rs.ComponentID == componentID && rs.EraID != nil && *rs.EraID == eraID {
			out = append(out, rs.Value)
		}
	}
	return out, nil
}

// --- Eras ---

func (m *MockStore) GetEra(_ context.Context, id uuid.UUID) (*schema.Era, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.eras[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (m *MockStore) GetEraFactor(_ context.Context, eraID, componentID uuid.UUID) (*schema.EraFactor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if f, ok := m.eraFactors[[2]uuid.UUID{eraID, componentID}]; ok {
		return &f, nil
	}
	return nil, nil
}

func (m *MockStore) UpsertEraFactors(_ context.Context, factors []schema.EraFactor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range factors {
		key := [2]uuid.UUID{f.EraID, f.ComponentID}
		if prior, ok := m.eraFactors[key]; ok {
			f.ID = prior.ID
			f.Multiplier = prior.Multiplier // multiplier is manually assigned
		}
		f.UpdatedAt = time.Now().UTC()
		m.eraFactors[key] = f
	}
	return nil
}

// SetEraFactor assigns a factor directly, for tests that need a specific
// multiplier.
func (m *MockStore) SetEraFactor(f schema.EraFactor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eraFactors[[2]uuid.UUID{f.EraID, f.ComponentID}] = f
}

// --- Experts ---

func (m *MockStore) GetExpert(_ context.Context, id uuid.UUID) (*schema.Expert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.experts[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (m *MockStore) GetExpertDomainLevel(_ context.Context, expertID, categoryID uuid.UUID) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.domains[[2]uuid.UUID{expertID, categoryID}], nil
}

func (m *MockStore) HasExpertVote(_ context.Context, expertID, entityID, modelID uuid.UUID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, v := range m.expertVotes {
		if v.ExpertID == expertID && v.EntityID == entityID && v.ModelID == modelID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockStore) InsertExpertVote(_ context.Context, vote *schema.ExpertVote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if vote.ID == uuid.Nil {
		vote.ID = uuid.New()
	}
	vote.CreatedAt = time.Now().UTC()
	m.expertVotes = append(m.expertVotes, *vote)
	return nil
}

func (m *MockStore) ListExpertVotes(_ context.Context, entityID, modelID uuid.UUID) ([]schema.ExpertVote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []schema.ExpertVote
	for _, v := range m.expertVotes {
		if v.EntityID == entityID && v.ModelID == modelID {
			out = append(out, v)
		}
	}
	return out, nil
}

// --- Fan votes ---

func (m *MockStore) UpsertFanVote(_ context.Context, vote *schema.FanVote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [3]uuid.UUID{vote.UserID, vote.EntityID, vote.CategoryID}
	if prior, ok := m.fanVotes[key]; ok {
		m.fanVersions = append(m.fanVersions, schema.FanVoteVersion{
			ID:        uuid.New(),
			VoteID:    prior.ID,
			Rating:    prior.Rating,
			Weight:    prior.Weight,
			CreatedAt: time.Now().UTC(),
		})
		vote.ID = prior.ID
	} else if vote.ID == uuid.Nil {
		vote.ID = uuid.New()
	}
	vote.UpdatedAt = time.Now().UTC()
	m.fanVotes[key] = *vote
	return nil
}

func (m *MockStore) ListFanVotes(_ context.Context, entityID, categoryID uuid.UUID) ([]schema.FanVote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []schema.FanVote
	for _, v := range m.fanVotes {
		if v.EntityID == entityID && v.CategoryID == categoryID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *MockStore) GetFanAggregate(_ context.Context, entityID, categoryID uuid.UUID) (*schema.FanVoteAggregate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.fanAggregates[[2]uuid.UUID{entityID, categoryID}]; ok {
		return &a, nil
	}
	return nil, nil
}

func (m *MockStore) UpsertFanAggregate(_ context.Context, agg *schema.FanVoteAggregate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]uuid.UUID{agg.EntityID, agg.CategoryID}
	if prior, ok := m.fanAggregates[key]; ok {
		agg.ID = prior.ID
	} else if agg.ID == uuid.Nil {
		agg.ID = uuid.New()
	}
	agg.UpdatedAt = time.Now().UTC()
	m.fanAggregates[key] = *agg
	return nil
}

// --- Influence ---

func (m *MockStore) GetInfluenceModel(_ context.Context, id uuid.UUID) (*schema.InfluenceModel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if im, ok := m.infModels[id]; ok {
		return &im, nil
	}
	return nil, nil
}

func (m *MockStore) GetActiveInfluenceModel(_ context.Context, categoryID uuid.UUID) (*schema.InfluenceModel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, im := range m.infModels {
		if im.CategoryID == categoryID && im.IsActive {
			return &im, nil
		}
	}
	return nil, nil
}

func (m *MockStore) ListInfluenceEvents(_ context.Context, entityID uuid.UUID) ([]schema.InfluenceEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []schema.InfluenceEvent
	for _, ev := range m.infEvents {
		if ev.EntityID == entityID {
			if src, ok := m.infSources[ev.SourceID]; ok {
				ev.SourceCredibility = src.CredibilityScore
			}
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *MockStore) GetInfluenceScore(_ context.Context, entityID, modelID uuid.UUID) (*schema.InfluenceScore, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.infScores[[2]uuid.UUID{entityID, modelID}]; ok {
		return &s, nil
	}
	return nil, nil
}

func (m *MockStore) UpsertInfluenceScore(_ context.Context, score *schema.InfluenceScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]uuid.UUID{score.EntityID, score.ModelID}
	if prior, ok := m.infScores[key]; ok {
		score.ID = prior.ID
	} else if score.ID == uuid.Nil {
		score.ID = uuid.New()
	}
	score.UpdatedAt = time.Now().UTC()
	m.infScores[key] = *score
	return nil
}

// --- Final scores / Snapshots ---

func (m *MockStore) UpsertFinalScores(_ context.Context, scores []schema.FinalScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, fs := range scores {
		key := [2]uuid.UUID{fs.EntityID, fs.ModelID}
		if prior, ok := m.finalScores[key]; ok {
			fs.ID = prior.ID
		} else if fs.ID == uuid.Nil {
			fs.ID = uuid.New()
		}
		fs.UpdatedAt = time.Now().UTC()
		m.finalScores[key] = fs
	}
	return nil
}

func (m *MockStore) ListFinalScores(_ context.Context, categoryID, modelID uuid.UUID) ([]schema.FinalScore, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []schema.FinalScore
	for _, fs := range m.finalScores {
		if fs.ModelID != modelID {
			continue
		}
		if e, ok := m.entities[fs.EntityID]; !ok || e.CategoryID != categoryID {
			continue
		} else {
			fs.EntityName = e.Name
		}
		out = append(out, fs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

func (m *MockStore) InsertSnapshot(_ context.Context, snap *schema.RankingSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if snap.ID == uuid.Nil {
		snap.ID = uuid.New()
	}
	snap.CreatedAt = time.Now().UTC()
	stored := *snap
	stored.Entries = append([]schema.SnapshotEntry(nil), snap.Entries...)
	m.snapshots[snap.ID] = stored
	return nil
}

func (m *MockStore) GetSnapshot(_ context.Context, id uuid.UUID) (*schema.RankingSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.snapshots[id]; ok {
		out := s
		out.Entries = append([]schema.SnapshotEntry(nil), s.Entries...)
		return &out, nil
	}
	return nil, nil
}

// --- Diagnostics ---

func (m *MockStore) GetStatus(_ context.Context) (schema.StoreStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return schema.StoreStatus{
		Backend:     "mock",
		Connected:   true,
		Categories:  len(m.categories),
		Entities:    len(m.entities),
		RawScores:   len(m.rawScores),
		FinalScores: len(m.finalScores),
		Snapshots:   len(m.snapshots),
	}, nil
}

func (m *MockStore) Close() error { return nil }

// --- Seeder ---

func (m *MockStore) InsertCategory(_ context.Context, c *schema.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[c.ID] = *c
	return nil
}

func (m *MockStore) InsertSubCategory(_ context.Context, sc *schema.SubCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subcategories[sc.ID] = *sc
	return nil
}

func (m *MockStore) InsertEntity(_ context.Context, e *schema.Entity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entities[e.ID] = *e
	return nil
}

func (m *MockStore) InsertComponent(_ context.Context, c *schema.ScoringComponent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.components[c.ID] = *c
	return nil
}

func (m *MockStore) InsertEra(_ context.Context, e *schema.Era) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eras[e.ID] = *e
	return nil
}

func (m *MockStore) InsertExpert(_ context.Context, e *schema.Expert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.experts[e.ID] = *e
	return nil
}

func (m *MockStore) InsertExpertDomain(_ context.Context, d *schema.ExpertDomain) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.domains[[2]uuid.UUID{d.ExpertID, d.CategoryID}] = d.ExpertiseLevel
	return nil
}

func (m *MockStore) InsertInfluenceSource(_ context.Context, s *schema.InfluenceSource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infSources[s.ID] = *s
	return nil
}

func (m *MockStore) InsertInfluenceEvent(_ context.Context, e *schema.InfluenceEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	m.infEvents = append(m.infEvents, *e)
	return nil
}

func (m *MockStore) InsertInfluenceModel(_ context.Context, im *schema.InfluenceModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infModels[im.ID] = *im
	return nil
}
