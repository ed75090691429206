package database

import (
	"errors"

	"sessiond/internal/configuration"
	"sessiond/internal/messaging"
	"sessiond/internal/models"
	"sessiond/internal/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotStore persists the single live session snapshot. Exactly one row
// exists per snapshot key; Save upserts it in place.
type SnapshotStore struct {
	DB *gorm.DB
}

// Load returns the persisted snapshot, or (nil, nil) when none exists yet.
func (s SnapshotStore) Load() (*models.SessionSnapshot, error) {
	var snapshot models.SessionSnapshot
	err := s.DB.Where("key = ?", configuration.SnapshotKey).First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (s SnapshotStore) Save(state models.SessionState) error {
	snapshot := models.SessionSnapshot{
		Key:             configuration.SnapshotKey,
		IsAuthenticated: state.IsAuthenticated,
	}
	if state.User != nil {
		snapshot.UserID = state.User.ID
		snapshot.Email = state.User.Email
		snapshot.DisplayName = state.User.DisplayName
		snapshot.IsFirstLogin = state.User.IsFirstLogin
		snapshot.TwoFactorAuth = state.User.TwoFactorAuth
		snapshot.OtpMethod = string(state.User.OtpMethod)
	}

	return s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"is_authenticated", "user_id", "email", "display_name",
			"is_first_login", "two_factor_auth", "otp_method", "updated_at",
		}),
	}).Create(&snapshot).Error
}

func (s SnapshotStore) Clear() error {
	return s.DB.Where("key = ?", configuration.SnapshotKey).
		Delete(&models.SessionSnapshot{}).Error
}

// StartSnapshotWriter drains the actions topic and re-persists the snapshot
// after every action. Writes are keyed off the live store state, not the
// envelope, so a lost message at worst delays persistence by one action.
func StartSnapshotWriter(
	subscriber messaging.ISubscriber,
	sessionStore *store.Store,
	snapshots SnapshotStore,
) {
	messages := subscriber.Subscribe()
	if messages == nil {
		return
	}

	go func() {
		for msg := range messages {
			state := sessionStore.State()
			if saveErr := snapshots.Save(state); saveErr != nil {
				zap.L().Error("Failed to persist session snapshot", zap.Error(saveErr))
			}
			msg.Ack()
		}
	}()
}

// Hydrate restores the persisted session on boot. Sub-flows always start
// fresh; only the user identity and the authenticated flag come back, and
// tokens are mirrored in from the token store.
func Hydrate(
	sessionStore *store.Store,
	snapshots SnapshotStore,
	accessToken string,
	refreshToken string,
) {
	snapshot, err := snapshots.Load()
	if err != nil {
		zap.L().Error("Failed to load session snapshot", zap.Error(err))
		return
	}
	if snapshot == nil {
		return
	}

	user := snapshot.ToUser()
	if user != nil {
		user.AccessToken = accessToken
		user.RefreshToken = refreshToken
	}

	// An authenticated snapshot without a refresh token cannot survive the
	// next refresh cycle; restore it as signed out.
	isAuthenticated := snapshot.IsAuthenticated
	if isAuthenticated && refreshToken == "" {
		zap.L().Warn("Persisted session has no refresh token, restoring signed out")
		isAuthenticated = false
		user = nil
	}

	sessionStore.Dispatch(store.HydrateSession{
		User:            user,
		IsAuthenticated: isAuthenticated,
	})
}
