package schema

// Version constants for the report schema and grading engine.
const (
	// SchemaVersion is the batch report schema version.
	SchemaVersion = "1"

	// EngineVersion is the gavel engine version.
	EngineVersion = "0.1.0"
)
