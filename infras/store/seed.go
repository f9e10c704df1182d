package store

import (
	"context"
	"fmt"
	"frontdesk/config"
	"frontdesk/shared/constant"
	"frontdesk/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const roomStatusAvailable = "Available"

// SampleRooms are created in an empty store.
var SampleRooms = []string{"101", "102", "103", "201", "202", "301", "302", "401"}

const (
	detailsAdminCreated     = "Default admin user created"
	detailsRoomsInitialized = "Sample rooms initialized"
	detailsRecreated        = "Store recreated after corruption was detected"
)

func insertSystemLog(ctx context.Context, ext sqlx.ExtContext, details string) error {
	query := ext.Rebind("INSERT INTO activity_logs (action, details, username, timestamp) VALUES (?, ?, ?, ?)")
	_, err := ext.ExecContext(ctx, query, constant.ContextSystem, details, constant.ContextSystem, timezone.Now())

	return err
}

// seed creates the administrator and the sample rooms when they are missing.
// It runs in one transaction so a half seeded store is never visible.
func seed(ctx context.Context, db *sqlx.DB, cfg *config.Config) error {
	return runTx(ctx, db, func(tx *sqlx.Tx) error {
		var users int

		err := tx.GetContext(ctx, &users, tx.Rebind("SELECT COUNT(*) FROM users WHERE username = ?"), cfg.App.Seed.AdminUsername)
		if err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}

		if users == 0 {
			_, err = tx.ExecContext(ctx, tx.Rebind("INSERT INTO users (username, password, created_at) VALUES (?, ?, ?)"),
				cfg.App.Seed.AdminUsername, cfg.App.Seed.AdminPassword, timezone.Now())
			if err != nil {
				return fmt.Errorf("failed to create admin user: %w", err)
			}

			if err = insertSystemLog(ctx, tx, detailsAdminCreated); err != nil {
				return fmt.Errorf("failed to log admin creation: %w", err)
			}

			log.Info().Str("username", cfg.App.Seed.AdminUsername).Msg(detailsAdminCreated)
		}

		var rooms int
		if err = tx.GetContext(ctx, &rooms, "SELECT COUNT(*) FROM rooms"); err != nil {
			return fmt.Errorf("failed to count rooms: %w", err)
		}

		if rooms > 0 {
			return nil
		}

		insertRoom := tx.Rebind("INSERT INTO rooms (room_number, status) VALUES (?, ?)")
		for _, number := range SampleRooms {
			if _, err = tx.ExecContext(ctx, insertRoom, number, roomStatusAvailable); err != nil {
				return fmt.Errorf("failed to create room %s: %w", number, err)
			}
		}

		if err = insertSystemLog(ctx, tx, detailsRoomsInitialized); err != nil {
			return fmt.Errorf("failed to log room creation: %w", err)
		}

		log.Info().Int("rooms", len(SampleRooms)).Msg(detailsRoomsInitialized)

		return nil
	})
}

func recordRecovery(ctx context.Context, db *sqlx.DB, cause error) {
	if err := insertSystemLog(ctx, db, detailsRecreated); err != nil {
		log.Warn().Err(err).AnErr("cause", cause).Msg("failed to record store recovery")
	}
}
