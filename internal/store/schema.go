package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableProgress     = "operation_progress"
	tableOracleEvents = "oracle_events"
)

var (
	// ProgressColumns holds the columns of the operation_progress table.
	ProgressColumns = []*schema.Column{
		{Name: "operation_key", Type: field.TypeString, Unique: true},
		{Name: "current_tier", Type: field.TypeInt, Default: 1},
		{Name: "correct_in_tier", Type: field.TypeInt, Default: 0},
		{Name: "total_attempts", Type: field.TypeInt, Default: 0},
		{Name: "total_correct", Type: field.TypeInt, Default: 0},
		{Name: "streak", Type: field.TypeInt, Default: 0},
		{Name: "history", Type: field.TypeString, Size: 2147483647, Default: "[]"},
		{Name: "last_attempt_ms", Type: field.TypeInt64, Default: 0},
		{Name: "updated_at_ms", Type: field.TypeInt64, Default: 0},
	}
	// ProgressTable is one row per operation key.
	ProgressTable = &schema.Table{
		Name:       tableProgress,
		Columns:    ProgressColumns,
		PrimaryKey: []*schema.Column{ProgressColumns[0]},
	}

	// OracleEventsColumns holds the columns of the oracle_events table.
	OracleEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "request_id", Type: field.TypeString},
		{Name: "created_at_ms", Type: field.TypeInt64},
		{Name: "backend", Type: field.TypeString},
		{Name: "model", Type: field.TypeString, Default: ""},
		{Name: "purpose", Type: field.TypeString, Default: ""},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// OracleEventsTable records every oracle and LLM call.
	OracleEventsTable = &schema.Table{
		Name:       tableOracleEvents,
		Columns:    OracleEventsColumns,
		PrimaryKey: []*schema.Column{OracleEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "oracleevent_purpose", Columns: []*schema.Column{OracleEventsColumns[5]}},
			{Name: "oracleevent_success", Columns: []*schema.Column{OracleEventsColumns[9]}},
		},
	}

	// Tables are created on Open.
	Tables = []*schema.Table{
		ProgressTable,
		OracleEventsTable,
	}
)
