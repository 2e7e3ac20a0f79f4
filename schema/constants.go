package schema

// Custom string types for type safety.
type (
	// NormalizationMethod selects how a raw value maps onto the [0,1] scale.
	NormalizationMethod string

	// BreakdownKey represents overlay keys used in scoring breakdowns.
	// Component contributions use the component slug directly.
	BreakdownKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the datastore.
	DatabaseBackend string

	// InfluenceEventType classifies influence evidence events.
	InfluenceEventType string

	// FailureMode controls how a scoring run reacts to a per-entity error.
	FailureMode string
)

// All normalization methods supported. An unknown method falls back to
// min-max behavior.
const (
	MinMaxNormalization NormalizationMethod = "min-max" // default
	LogNormalization    NormalizationMethod = "log"
	ZScoreNormalization NormalizationMethod = "z-score"
)

// Overlay keys stored in FinalScore breakdowns next to component slugs.
const (
	BreakdownExpert    BreakdownKey = "expert_influence"
	BreakdownFan       BreakdownKey = "fan_sentiment"
	BreakdownInfluence BreakdownKey = "ai_influence"
)

// Blend weights for the score overlays. The order base → expert → fan →
// influence is fixed; each overlay applies to the already-blended running
// total, so changing the order changes the result.
const (
	ExpertOverlayWeight    = 0.20
	FanOverlayWeight       = 0.10
	InfluenceOverlayWeight = 0.15
)

// SubjectiveWeightCap is the ceiling applied to subjective component weights
// before renormalization.
const SubjectiveWeightCap = 0.10

// WeightSumTolerance bounds the accepted deviation of a model's weight sum
// from 1.0 at creation time.
const WeightSumTolerance = 0.01

// StdDevFloor replaces a zero standard deviation in era factors so downstream
// division stays defined.
const StdDevFloor = 0.1

// Dominance factor clamp bounds outlier amplification in era adjustment.
const (
	DominanceFloor   = 0.5
	DominanceCeiling = 2.0
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All datastore backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// PeerMentionEvent marks influence events that feed the peer sub-score.
const PeerMentionEvent InfluenceEventType = "peer_mention"

// All failure modes supported for a scoring run.
const (
	FailFast   FailureMode = "fail_fast" // default, deterministic all-or-nothing
	BestEffort FailureMode = "best_effort"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid datastore backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}

// ValidFailureModes lists all valid failure modes.
var ValidFailureModes = map[FailureMode]struct{}{
	FailFast:   {},
	BestEffort: {},
}
