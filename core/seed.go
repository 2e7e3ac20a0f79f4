package core

import (
	"context"
	"fmt"
	"time"

	"github.com/goatarena/goatrank/internal/contract"
	"github.com/goatarena/goatrank/schema"
	"github.com/google/uuid"
)

// SeedResult reports what the demo seeder created, so command output can
// point at the category and model to score next.
type SeedResult struct {
	CategoryID uuid.UUID `json:"category_id"`
	ModelID    uuid.UUID `json:"model_id"`
	Entities   int       `json:"entities"`
	Components int       `json:"components"`
	RawScores  int       `json:"raw_scores"`
	Experts    int       `json:"experts"`
	FanVotes   int       `json:"fan_votes"`
	Events     int       `json:"influence_events"`
}

// demoEntity bundles one candidate's fixture data.
type demoEntity struct {
	name    string
	slug    string
	sub     int       // index into subcategories
	values  []float64 // raw values in component order
	era     int       // index into eras, -1 for none
	expert  float64   // expert vote score, 0 to skip
	fans    []float64 // fan ratings
	breadth int       // influence events to fabricate
}

// SeedDemo loads a small basketball dataset covering every part of the
// pipeline: entities with raw scores, an active scoring model, era factors,
// expert and fan votes, and influence evidence. It is idempotent only in the
// sense that re-running against a cleared store reproduces the same shape;
// IDs are fresh every run.
func SeedDemo(ctx context.Context, store contract.Store, seeder contract.Seeder) (*SeedResult, error) {
	result := &SeedResult{}

	category := schema.Category{
		ID: uuid.New(), Name: "Basketball", Slug: "basketball",
		Description: "Greatest basketball players of all time",
	}
	if err := seeder.InsertCategory(ctx, &category); err != nil {
		return nil, fmt.Errorf("seed category: %w", err)
	}
	result.CategoryID = category.ID

	subs := []schema.SubCategory{
		{ID: uuid.New(), CategoryID: category.ID, Name: "Guards", Slug: "guards"},
		{ID: uuid.New(), CategoryID: category.ID, Name: "Big Men", Slug: "big-men"},
	}
	for i := range subs {
		if err := seeder.InsertSubCategory(ctx, &subs[i]); err != nil {
			return nil, fmt.Errorf("seed subcategory: %w", err)
		}
	}

	components := []schema.ScoringComponent{
		{ID: uuid.New(), Name: "Championships", Slug: "championships", NormalizationType: schema.MinMaxNormalization},
		{ID: uuid.New(), Name: "MVP Awards", Slug: "mvp-awards", NormalizationType: schema.MinMaxNormalization},
		{ID: uuid.New(), Name: "Career Points", Slug: "career-points", NormalizationType: schema.LogNormalization},
		{ID: uuid.New(), Name: "Peak Dominance", Slug: "peak-dominance", NormalizationType: schema.ZScoreNormalization},
		{ID: uuid.New(), Name: "Cultural Hype", Slug: "cultural-hype", NormalizationType: schema.MinMaxNormalization, IsSubjective: true},
	}
	for i := range components {
		if err := seeder.InsertComponent(ctx, &components[i]); err != nil {
			return nil, fmt.Errorf("seed component: %w", err)
		}
	}
	result.Components = len(components)

	eras := []schema.Era{
		{ID: uuid.New(), CategoryID: category.ID, Name: "Pre-Merger", StartYear: 1950, EndYear: 1975, Context: "Fewer teams, shorter seasons"},
		{ID: uuid.New(), CategoryID: category.ID, Name: "Modern", StartYear: 1976, EndYear: 2010, Context: "Expanded league, global talent pool"},
	}
	for i := range eras {
		if err := seeder.InsertEra(ctx, &eras[i]); err != nil {
			return nil, fmt.Errorf("seed era: %w", err)
		}
	}

	model := schema.ScoringModel{
		ID: uuid.New(), CategoryID: category.ID,
		Name: "demo-composite", Version: 1, IsActive: true,
	}
	weights := []schema.ScoringWeight{
		{ComponentID: components[0].ID, Weight: 0.30},
		{ComponentID: components[1].ID, Weight: 0.25},
		{ComponentID: components[2].ID, Weight: 0.20},
		{ComponentID: components[3].ID, Weight: 0.15},
		{ComponentID: components[4].ID, Weight: 0.10},
	}
	if err := CreateScoringModel(ctx, store, &model, weights); err != nil {
		return nil, fmt.Errorf("seed scoring model: %w", err)
	}
	result.ModelID = model.ID

	demo := []demoEntity{
		{
			name: "Michael Jordan", slug: "michael-jordan", sub: 0,
			values: []float64{6, 5, 32292, 3.2}, era: 1,
			expert: 9.8, fans: []float64{10, 9, 10}, breadth: 5,
		},
		{
			name: "Bill Russell", slug: "bill-russell", sub: 1,
			values: []float64{11, 5, 14522, 2.4}, era: 0,
			expert: 9.1, fans: []float64{8, 9}, breadth: 3,
		},
		{
			name: "Kareem Abdul-Jabbar", slug: "kareem-abdul-jabbar", sub: 1,
			values: []float64{6, 6, 38387, 2.1}, era: 1,
			expert: 9.3, fans: []float64{8, 8, 7}, breadth: 4,
		},
		{
			name: "Magic Johnson", slug: "magic-johnson", sub: 0,
			values: []float64{5, 3, 17707, 1.8}, era: 1,
			fans: []float64{9, 8}, breadth: 2,
		},
	}

	entities := make([]schema.Entity, len(demo))
	for i, d := range demo {
		entities[i] = schema.Entity{
			ID: uuid.New(), CategoryID: category.ID,
			SubCategoryID: subs[d.sub].ID, Name: d.name, Slug: d.slug,
		}
		if err := seeder.InsertEntity(ctx, &entities[i]); err != nil {
			return nil, fmt.Errorf("seed entity %s: %w", d.name, err)
		}
	}
	result.Entities = len(entities)

	// Objective components carry era tags; hype stays era-free and gets a
	// fabricated value so the subjective cap has something to cap.
	for i, d := range demo {
		for c, v := range d.values {
			raw := schema.RawScore{
				EntityID:    entities[i].ID,
				ComponentID: components[c].ID,
				Value:       v,
				Source:      "demo-seed",
			}
			if d.era >= 0 {
				raw.EraID = &eras[d.era].ID
			}
			if err := store.InsertRawScore(ctx, &raw); err != nil {
				return nil, fmt.Errorf("seed raw score: %w", err)
			}
			result.RawScores++
		}
		hype := schema.RawScore{
			EntityID:    entities[i].ID,
			ComponentID: components[4].ID,
			Value:       float64(60 + 10*i),
			Source:      "demo-seed",
		}
		if err := store.InsertRawScore(ctx, &hype); err != nil {
			return nil, fmt.Errorf("seed raw score: %w", err)
		}
		result.RawScores++
	}

	for i := range eras {
		if err := CalculateEraFactors(ctx, store, eras[i].ID); err != nil {
			return nil, fmt.Errorf("seed era factors: %w", err)
		}
	}

	experts := []schema.Expert{
		{ID: uuid.New(), Name: "Veteran Analyst", ReputationScore: 1.4, IsActive: true, VerificationStatus: true},
		{ID: uuid.New(), Name: "League Historian", ReputationScore: 1.1, IsActive: true, VerificationStatus: true},
	}
	for i := range experts {
		if err := seeder.InsertExpert(ctx, &experts[i]); err != nil {
			return nil, fmt.Errorf("seed expert: %w", err)
		}
		domain := schema.ExpertDomain{
			ExpertID: experts[i].ID, CategoryID: category.ID, ExpertiseLevel: 0.9,
		}
		if err := seeder.InsertExpertDomain(ctx, &domain); err != nil {
			return nil, fmt.Errorf("seed expert domain: %w", err)
		}
	}
	result.Experts = len(experts)

	for i, d := range demo {
		if d.expert == 0 {
			continue
		}
		for e := range experts {
			vote := schema.ExpertVote{
				ExpertID:   experts[e].ID,
				EntityID:   entities[i].ID,
				ModelID:    model.ID,
				Score:      d.expert - float64(e)*0.4,
				Confidence: 0.9,
				Rationale:  "demo seed vote",
			}
			if err := SubmitExpertVote(ctx, store, &vote); err != nil {
				return nil, fmt.Errorf("seed expert vote: %w", err)
			}
		}
	}

	fanSvc := NewFanVoteService(store)
	for i, d := range demo {
		for _, rating := range d.fans {
			vote := schema.FanVote{
				UserID:     uuid.New(),
				EntityID:   entities[i].ID,
				CategoryID: category.ID,
				Rating:     rating,
				Weight:     1,
			}
			if _, err := fanSvc.SubmitVote(ctx, &vote); err != nil {
				return nil, fmt.Errorf("seed fan vote: %w", err)
			}
			result.FanVotes++
		}
	}

	sources := []schema.InfluenceSource{
		{ID: uuid.New(), Name: "National Press", CredibilityScore: 0.9},
		{ID: uuid.New(), Name: "Peer Interviews", CredibilityScore: 0.8},
	}
	for i := range sources {
		if err := seeder.InsertInfluenceSource(ctx, &sources[i]); err != nil {
			return nil, fmt.Errorf("seed influence source: %w", err)
		}
	}

	infModel := schema.InfluenceModel{
		ID: uuid.New(), CategoryID: category.ID, Name: "demo-influence", IsActive: true,
		Weights: schema.InfluenceWeights{Breadth: 0.25, Depth: 0.25, Longevity: 0.25, Peer: 0.25},
	}
	if err := seeder.InsertInfluenceModel(ctx, &infModel); err != nil {
		return nil, fmt.Errorf("seed influence model: %w", err)
	}

	for i, d := range demo {
		for n := range d.breadth {
			eventType := schema.InfluenceEventType("media_coverage")
			source := sources[0]
			if n%2 == 1 {
				eventType = schema.PeerMentionEvent
				source = sources[1]
			}
			when := time.Date(1980+4*n, time.June, 1, 0, 0, 0, 0, time.UTC)
			event := schema.InfluenceEvent{
				EntityID:    entities[i].ID,
				SourceID:    source.ID,
				EventType:   eventType,
				Weight:      1.5,
				EventDate:   &when,
				Description: fmt.Sprintf("demo evidence %d for %s", n+1, d.name),
			}
			if err := seeder.InsertInfluenceEvent(ctx, &event); err != nil {
				return nil, fmt.Errorf("seed influence event: %w", err)
			}
			result.Events++
		}
		if _, err := CalculateInfluenceScore(ctx, store, entities[i].ID, &infModel.ID); err != nil {
			return nil, fmt.Errorf("seed influence score: %w", err)
		}
	}

	return result, nil
}
