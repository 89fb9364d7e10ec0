package user

import (
	"context"
	"errors"
	"time"

	"finance-tracker-go/internal/db"
	domain "finance-tracker-go/internal/domain/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return db.InTx(ctx, r.db, fn)
}

func (r *GormRepository) CreateIfMissing(ctx context.Context, user *domain.User) (bool, error) {
	result := db.Conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(user)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *GormRepository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	var user domain.User
	if err := db.Conn(ctx, r.db).
		Where("id = ?", userID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *GormRepository) UpdateEmail(ctx context.Context, userID, email string) error {
	return db.Conn(ctx, r.db).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"email":      email,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *GormRepository) UpdateSettings(ctx context.Context, userID, settings string) error {
	result := db.Conn(ctx, r.db).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"settings":   settings,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
