package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/reelread/internal/db"
)

// ProfileRepository covers profiles, device tokens and notification rows.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: database}
}

func (r *ProfileRepository) Get(ctx context.Context, id string) (*db.Profile, error) {
	var p db.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert creates the profile or updates username and avatar url. An empty
// avatarURL keeps the stored one. friends_count is never written here.
func (r *ProfileRepository) Upsert(ctx context.Context, id, username, avatarURL string) (*db.Profile, error) {
	p := db.Profile{ID: id, Username: username, AvatarURL: avatarURL}
	columns := []string{"username", "updated_at"}
	if avatarURL != "" {
		columns = append(columns, "avatar_url")
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).
		Create(&p).Error
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Usernames resolves user ids to usernames. Unknown ids are absent.
func (r *ProfileRepository) Usernames(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []db.Profile
	if err := r.db.WithContext(ctx).Select("id", "username").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, p := range rows {
		out[p.ID] = p.Username
	}
	return out, nil
}

// RegisterDeviceToken upserts by token; a token moving to another account
// follows the latest registration.
func (r *ProfileRepository) RegisterDeviceToken(ctx context.Context, userID, token, platform string) (*db.DeviceToken, error) {
	dt := db.DeviceToken{ID: uuid.NewString(), UserID: userID, Token: token, Platform: platform}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "platform", "updated_at"}),
		}).
		Create(&dt).Error
	if err != nil {
		return nil, err
	}
	var stored db.DeviceToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// DeviceTokens lists every push token registered by the user.
func (r *ProfileRepository) DeviceTokens(ctx context.Context, userID string) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).
		Model(&db.DeviceToken{}).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Pluck("token", &tokens).Error
	return tokens, err
}

// DeleteDeviceTokens drops tokens the push provider reported as dead.
func (r *ProfileRepository) DeleteDeviceTokens(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("token IN ?", tokens).Delete(&db.DeviceToken{}).Error
}

// CreateNotification inserts the row that triggers push fan-out.
func (r *ProfileRepository) CreateNotification(ctx context.Context, n *db.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}
