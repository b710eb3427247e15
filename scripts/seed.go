package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/consultacerta/noshow-backend/internal/adapters/database"
	"github.com/consultacerta/noshow-backend/internal/domain/entities"
	"github.com/consultacerta/noshow-backend/internal/infrastructure/clients/postgres"
	"github.com/consultacerta/noshow-backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to DB")
	}
	defer pgClient.Close()

	profileRepo := database.NewHealthProfileAdapter(pgClient)
	appointmentRepo := database.NewAppointmentAdapter(pgClient)
	reminderRepo := database.NewReminderAdapter(pgClient)

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				noshow_predictions,
				reminders,
				appointments,
				patient_health_profiles
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to reset tables")
		}
	}

	now := time.Now()
	str := func(s string) *string { return &s }

	// 1. Seed health profiles
	profiles := []entities.HealthProfile{
		{PatientID: "patient-ana", Age: 68, Gender: "F", Hypertension: entities.Yes, Diabetes: entities.Yes, Alcoholism: entities.No, Disability: entities.No, CreatedAt: now, UpdatedAt: now},
		{PatientID: "patient-bruno", Age: 34, Gender: "M", Hypertension: entities.No, Diabetes: entities.No, Alcoholism: entities.No, Disability: entities.No, CreatedAt: now, UpdatedAt: now},
		{PatientID: "patient-clara", Age: 52, Gender: "F", Hypertension: entities.Yes, Diabetes: entities.No, Alcoholism: entities.No, Disability: entities.Yes, DisabilityType: str("motora"), CreatedAt: now, UpdatedAt: now},
		{PatientID: "patient-diego", Age: 45, Gender: "M", Hypertension: entities.No, Diabetes: entities.Yes, Alcoholism: entities.Yes, Disability: entities.No, CreatedAt: now, UpdatedAt: now},
		{PatientID: "patient-elisa", Age: 29, Gender: "F", Hypertension: entities.No, Diabetes: entities.No, Alcoholism: entities.No, Disability: entities.No, CreatedAt: now, UpdatedAt: now},
	}

	for _, p := range profiles {
		if err := profileRepo.Upsert(ctx, &p); err != nil {
			log.Error().Err(err).Str("patient_id", p.PatientID).Msg("failed to seed health profile")
		}
	}

	// 2. Seed appointments at varying lead times
	type seedAppointment struct {
		patientID string
		leadDays  int
		status    entities.AppointmentStatus
	}

	seedAppointments := []seedAppointment{
		{patientID: "patient-ana", leadDays: 45, status: entities.AppointmentStatusScheduled},
		{patientID: "patient-bruno", leadDays: 3, status: entities.AppointmentStatusConfirmed},
		{patientID: "patient-clara", leadDays: 14, status: entities.AppointmentStatusScheduled},
		{patientID: "patient-diego", leadDays: 30, status: entities.AppointmentStatusScheduled},
		{patientID: "patient-elisa", leadDays: 7, status: entities.AppointmentStatusCancelled},
	}

	appointmentIDs := make(map[string]string, len(seedAppointments))
	for _, sa := range seedAppointments {
		appointment := entities.Appointment{
			ID:            uuid.New().String(),
			PatientID:     sa.patientID,
			ScheduledOn:   now,
			AppointmentAt: now.AddDate(0, 0, sa.leadDays),
			Status:        sa.status,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := appointmentRepo.Create(ctx, &appointment); err != nil {
			log.Error().Err(err).Str("patient_id", sa.patientID).Msg("failed to seed appointment")
			continue
		}
		appointmentIDs[sa.patientID] = appointment.ID
	}

	// 3. Seed SMS reminders for a subset of appointments
	for _, patientID := range []string{"patient-ana", "patient-clara"} {
		appointmentID, ok := appointmentIDs[patientID]
		if !ok {
			continue
		}
		reminder := entities.Reminder{
			ID:            uuid.New().String(),
			AppointmentID: appointmentID,
			Channel:       "sms",
			Sent:          entities.Yes,
			CreatedAt:     now,
		}
		if err := reminderRepo.Create(ctx, &reminder); err != nil {
			log.Error().Err(err).Str("appointment_id", appointmentID).Msg("failed to seed reminder")
		}
	}

	log.Info().
		Int("profiles", len(profiles)).
		Int("appointments", len(appointmentIDs)).
		Msg("seeding complete")
}
