package user

import "time"

// User is created the first time a token subject is seen. Settings holds the
// raw JSON object as stored; use ResolveSettings to read it.
type User struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Email     *string   `gorm:"type:text"`
	Settings  string    `gorm:"not null;default:'{}'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
