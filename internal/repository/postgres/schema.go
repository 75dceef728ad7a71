package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Schema is created on startup. Statements are idempotent; a dedicated
// migration tool is out of scope for this service.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS specializations (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS cabinets (
		id UUID PRIMARY KEY,
		number TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS patients (
		id UUID PRIMARY KEY,
		full_name TEXT NOT NULL,
		birth_date DATE NOT NULL,
		phone TEXT NOT NULL,
		address TEXT NOT NULL,
		insurance_number VARCHAR(16) NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS doctors (
		id UUID PRIMARY KEY,
		full_name TEXT NOT NULL,
		phone TEXT NOT NULL,
		experience_years INTEGER NOT NULL,
		cabinet_id UUID REFERENCES cabinets(id),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS doctor_specializations (
		doctor_id UUID NOT NULL REFERENCES doctors(id) ON DELETE CASCADE,
		specialization_id UUID NOT NULL REFERENCES specializations(id),
		PRIMARY KEY (doctor_id, specialization_id)
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES patients(id) ON DELETE CASCADE,
		doctor_id UUID NOT NULL REFERENCES doctors(id) ON DELETE RESTRICT,
		appointment_date DATE NOT NULL,
		appointment_time TIME NOT NULL,
		diagnosis TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'scheduled',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_patient ON appointments (patient_id)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_doctor_date ON appointments (doctor_id, appointment_date)`,
	// Store-level backstop for the slot uniqueness rule. The service
	// validates inside a doctor-row lock; this index catches anything
	// that slips past it.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_active_slot
		ON appointments (doctor_id, appointment_date, appointment_time)
		WHERE status IN ('scheduled', 'completed')`,
}

// EnsureSchema creates all tables and indexes if they do not exist.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
