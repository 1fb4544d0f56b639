package storage

import (
	"time"

	"github.com/DillonStreator/safeid/domain"
	"github.com/DillonStreator/safeid/entityid"
	"github.com/eleanorhealth/milo"
)

// IDs are stored in uuid columns through entityid.ID's sql.Scanner and
// driver.Valuer, so a malformed row id loads as entityid.Empty.
type user struct {
	ID         entityid.ID `pg:"id,pk,type:uuid"`
	Email      string      `pg:"email"`
	Password   string      `pg:"password"`
	CreatedAt  time.Time   `pg:"created_at"`
	LastSeenAt time.Time   `pg:"last_seen_at"`
	Todos      []*todo     `pg:"rel:has-many"`
}

var _ milo.Model = (*user)(nil)

type todo struct {
	ID          entityid.ID `pg:"id,pk,type:uuid"`
	UserID      entityid.ID `pg:"user_id,type:uuid"`
	Title       string      `pg:"title"`
	Description string      `pg:"description"`
	Completed   bool        `pg:"completed,use_zero"`
	CreatedAt   time.Time   `pg:"created_at"`
	UpdatedAt   time.Time   `pg:"updated_at"`
}

func (u *user) FromEntity(e interface{}) error {
	entity := e.(*domain.User)

	u.ID = entity.ID
	u.Email = entity.Email
	u.Password = entity.Password

	u.CreatedAt = entity.CreatedAt
	u.LastSeenAt = entity.LastSeenAt

	for _, t := range entity.Todos {
		u.Todos = append(u.Todos, &todo{
			ID:          t.ID,
			UserID:      u.ID,
			Title:       t.Title,
			Description: t.Description,
			Completed:   t.Completed,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		})
	}

	return nil
}

func (u *user) ToEntity() (interface{}, error) {
	entity := &domain.User{}

	entity.ID = u.ID
	entity.Email = u.Email
	entity.Password = u.Password

	entity.CreatedAt = u.CreatedAt
	entity.LastSeenAt = u.LastSeenAt

	entity.Todos = make(domain.Todos, 0, len(u.Todos))
	for _, t := range u.Todos {
		if t.ID.IsEmpty() {
			continue
		}
		entity.Todos = append(entity.Todos, &domain.Todo{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Completed:   t.Completed,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		})
	}

	return entity, nil
}
