// Package store implements the spreadsheet-backed record store: each table
// is one xlsx workbook whose first row is the schema header and whose
// remaining rows are records. Every mutation is a full read-modify-write of
// the whole table.
package store

// Table names. Each is an independent namespace for id allocation and maps
// to one workbook file under the data directory.
const (
	TablePatients      = "patients"
	TableAppointments  = "appointments"
	TableBilling       = "billing"
	TableReports       = "reports"
	TablePrescriptions = "prescriptions"
)

// Schemas is the registry of ordered column lists per table. Column order on
// disk always matches this order, header row first.
var Schemas = map[string][]string{
	TablePatients: {
		"id", "name", "age", "gender", "phone", "email", "address",
		"medical_history", "allergies", "emergency_contact", "created_date",
	},
	TableAppointments: {
		"id", "patient_id", "patient_name", "appointment_date", "appointment_time",
		"status", "reason", "notes", "created_date",
	},
	TableBilling: {
		"id", "patient_id", "patient_name", "service_description", "amount",
		"status", "payment_method", "bill_date", "due_date", "created_date",
	},
	TableReports: {
		"id", "patient_id", "patient_name", "report_type", "diagnosis",
		"treatment", "medications", "follow_up_date", "created_date",
	},
	TablePrescriptions: {
		"id", "patient_id", "patient_name", "medication_name", "dosage",
		"frequency", "duration", "instructions", "prescribed_date",
	},
}

// Tables lists all registered table names in a stable order.
func Tables() []string {
	return []string{
		TablePatients, TableAppointments, TableBilling, TableReports, TablePrescriptions,
	}
}

// Schema returns the ordered column list for a table, or nil if the table is
// not registered.
func Schema(table string) []string {
	return Schemas[table]
}

// TimestampColumn returns the server-assigned creation timestamp column for a
// table. Prescriptions use prescribed_date; every other table uses
// created_date.
func TimestampColumn(table string) string {
	if table == TablePrescriptions {
		return "prescribed_date"
	}
	return "created_date"
}
