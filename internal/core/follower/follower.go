package follower

import (
	"time"

	"flock/internal/core/user"

	"github.com/gofrs/uuid"
)

// Follow is a directed edge: FollowerID follows FollowingID. At most one edge exists per
// ordered pair.
type Follow struct {
	ID          uuid.UUID `gorm:"primaryKey;type:char(36)"`
	FollowerID  uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_follow_pair"`
	Follower    user.User `gorm:"foreignKey:FollowerID"`
	FollowingID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_follow_pair;index"`
	Following   user.User `gorm:"foreignKey:FollowingID"`
	CreatedAt   time.Time `gorm:"precision:6;index"`
}
