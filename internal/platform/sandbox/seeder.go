// Package sandbox generates deterministic demo data for the five clinic
// tables, for developer on-boarding and UI demos. Seeding overwrites the
// tables it touches.
package sandbox

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinicdesk/internal/store"
)

// SeedConfig controls the volume of generated demo data.
type SeedConfig struct {
	PatientCount            int   `json:"patientCount"`
	AppointmentsPerPatient  int   `json:"appointmentsPerPatient"`
	BillsPerPatient         int   `json:"billsPerPatient"`
	ReportsPerPatient       int   `json:"reportsPerPatient"`
	PrescriptionsPerPatient int   `json:"prescriptionsPerPatient"`
	Seed                    int64 `json:"seed"`
}

// DefaultSeedConfig returns a config that fills a small demo clinic.
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		PatientCount:            10,
		AppointmentsPerPatient:  2,
		BillsPerPatient:         1,
		ReportsPerPatient:       1,
		PrescriptionsPerPatient: 1,
	}
}

var (
	firstNames = []string{"Aarav", "Priya", "Rahul", "Sneha", "Vikram", "Anita", "Rohan", "Meera", "Karan", "Divya"}
	lastNames  = []string{"Sharma", "Patel", "Reddy", "Iyer", "Gupta", "Nair", "Singh", "Das", "Mehta", "Joshi"}
	genders    = []string{"Male", "Female"}
	reasons    = []string{"General checkup", "Fever", "Back pain", "Vaccination", "Follow-up"}
	services   = []string{"Consultation", "Blood test", "X-Ray", "Physiotherapy session"}
	reports    = []string{"Blood Test", "X-Ray", "MRI", "General Checkup"}
	meds       = []string{"Paracetamol", "Amoxicillin", "Ibuprofen", "Cetirizine"}
)

// Seeder writes demo records through the table store.
type Seeder struct {
	tables store.TableStore
	logger zerolog.Logger
	now    func() time.Time
}

// NewSeeder creates a seeder over tables.
func NewSeeder(tables store.TableStore, logger zerolog.Logger) *Seeder {
	return &Seeder{tables: tables, logger: logger, now: time.Now}
}

// Seed populates all five tables. The same SeedConfig.Seed always produces
// the same rows.
func (s *Seeder) Seed(cfg SeedConfig) error {
	rng := rand.New(rand.NewSource(cfg.Seed))
	now := s.now().Format("2006-01-02 15:04:05")
	today := s.now()

	var patients, appointments, billing, reportRecs, prescriptions []store.Record
	for i := 1; i <= cfg.PatientCount; i++ {
		name := firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
		pid := strconv.Itoa(i)
		patients = append(patients, store.Record{
			"id":                pid,
			"name":              name,
			"age":               strconv.Itoa(20 + rng.Intn(60)),
			"gender":            genders[rng.Intn(len(genders))],
			"phone":             fmt.Sprintf("+91-98%08d", rng.Intn(100000000)),
			"email":             fmt.Sprintf("patient%d@example.com", i),
			"emergency_contact": fmt.Sprintf("+91-97%08d", rng.Intn(100000000)),
			"created_date":      now,
		})

		for j := 0; j < cfg.AppointmentsPerPatient; j++ {
			date := today.AddDate(0, 0, rng.Intn(14)).Format("2006-01-02")
			appointments = append(appointments, store.Record{
				"id":               strconv.Itoa(len(appointments) + 1),
				"patient_id":       pid,
				"patient_name":     name,
				"appointment_date": date,
				"appointment_time": fmt.Sprintf("%02d:%02d", 9+rng.Intn(8), 15*rng.Intn(4)),
				"status":           "Pending",
				"reason":           reasons[rng.Intn(len(reasons))],
				"created_date":     now,
			})
		}
		for j := 0; j < cfg.BillsPerPatient; j++ {
			billing = append(billing, store.Record{
				"id":                  strconv.Itoa(len(billing) + 1),
				"patient_id":          pid,
				"patient_name":        name,
				"service_description": services[rng.Intn(len(services))],
				"amount":              strconv.Itoa(200 + 50*rng.Intn(20)),
				"status":              "Pending",
				"bill_date":           today.Format("2006-01-02"),
				"due_date":            today.AddDate(0, 0, 30).Format("2006-01-02"),
				"created_date":        now,
			})
		}
		for j := 0; j < cfg.ReportsPerPatient; j++ {
			reportRecs = append(reportRecs, store.Record{
				"id":           strconv.Itoa(len(reportRecs) + 1),
				"patient_id":   pid,
				"patient_name": name,
				"report_type":  reports[rng.Intn(len(reports))],
				"created_date": now,
			})
		}
		for j := 0; j < cfg.PrescriptionsPerPatient; j++ {
			prescriptions = append(prescriptions, store.Record{
				"id":              strconv.Itoa(len(prescriptions) + 1),
				"patient_id":      pid,
				"patient_name":    name,
				"medication_name": meds[rng.Intn(len(meds))],
				"dosage":          "500mg",
				"frequency":       "Twice a day",
				"duration":        fmt.Sprintf("%d days", 3+rng.Intn(10)),
				"prescribed_date": now,
			})
		}
	}

	for table, records := range map[string][]store.Record{
		store.TablePatients:      patients,
		store.TableAppointments:  appointments,
		store.TableBilling:       billing,
		store.TableReports:       reportRecs,
		store.TablePrescriptions: prescriptions,
	} {
		if err := s.tables.Write(table, records, store.Schema(table)); err != nil {
			return fmt.Errorf("seed %s: %w", table, err)
		}
		s.logger.Info().Str("table", table).Int("rows", len(records)).Msg("table seeded")
	}
	return nil
}
