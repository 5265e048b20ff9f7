// Package analytics derives the dashboard rollup from the patients,
// appointments, and billing tables.
package analytics

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinicdesk/internal/store"
)

// Snapshot is the aggregate returned by GET /analytics. AvgWaitTime and
// RevenueTrend are static dashboard stand-ins, not computed values.
type Snapshot struct {
	TotalAppointments  int            `json:"total_appointments"`
	PendingBilling     int            `json:"pending_billing"`
	ActivePatients     int            `json:"active_patients"`
	AvgWaitTime        string         `json:"avg_wait_time"`
	TodaysAppointments []store.Record `json:"todays_appointments"`
	RevenueTrend       string         `json:"revenue_trend"`
	FollowUpAlerts     int            `json:"follow_up_alerts"`
}

// Service reads the three source tables and computes the snapshot.
type Service struct {
	tables store.TableStore
	logger zerolog.Logger
	now    func() time.Time
}

// NewService creates an analytics service over tables.
func NewService(tables store.TableStore, logger zerolog.Logger) *Service {
	return &Service{tables: tables, logger: logger, now: time.Now}
}

// Summarize computes the snapshot for the process-local calendar date.
// Unreadable tables count as empty, same as the record services.
func (s *Service) Summarize(ctx context.Context) Snapshot {
	appointments := s.read(store.TableAppointments)
	patients := s.read(store.TablePatients)
	billing := s.read(store.TableBilling)

	pendingBilling := 0
	for _, b := range billing {
		if b["status"] == "Pending" {
			pendingBilling++
		}
	}

	today := s.now().Format("2006-01-02")
	todays := []store.Record{}
	followUps := 0
	for _, a := range appointments {
		if a["appointment_date"] == today {
			todays = append(todays, a)
		}
		if a["status"] == "Pending" {
			followUps++
		}
	}

	return Snapshot{
		TotalAppointments:  len(appointments),
		PendingBilling:     pendingBilling,
		ActivePatients:     len(patients),
		AvgWaitTime:        "15 mins",
		TodaysAppointments: todays,
		RevenueTrend:       "Increasing",
		FollowUpAlerts:     followUps,
	}
}

func (s *Service) read(table string) []store.Record {
	records, err := s.tables.Read(table)
	if err != nil {
		s.logger.Error().Err(err).Str("table", table).Msg("analytics read failed, treating as empty")
		return nil
	}
	return records
}
