package storage

import (
	"context"
	"reflect"

	"github.com/DillonStreator/safeid/domain"
	"github.com/DillonStreator/safeid/entityid"
	"github.com/eleanorhealth/milo"
	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("not found")
	ErrEmptyID  = errors.New("entity id is empty")
)

// MiloEntityModelMap is used by Milo to map domain entities to storage models.
var MiloEntityModelMap = milo.EntityModelMap{
	reflect.TypeOf(&domain.User{}): milo.ModelConfig{
		Model: reflect.TypeOf(&user{}),
		FieldColumnMap: milo.FieldColumnMap{
			"Email": "email",
		},
	},
}

func CreateSchema(db *pg.DB) error {
	models := []interface{}{
		(*user)(nil),
		(*todo)(nil),
	}

	for _, model := range models {
		err := db.Model(model).CreateTable(&orm.CreateTableOptions{
			IfNotExists: true,
		})
		if err != nil {
			return errors.Wrapf(err, "create table for %T", model)
		}
	}
	return nil
}

// Users loads and saves the user aggregate, todos included.
type Users struct {
	db    orm.DB
	store *milo.Store
}

func NewUsers(db orm.DB, store *milo.Store) *Users {
	return &Users{db: db, store: store}
}

// Find returns ErrNotFound for Empty, for ids with no row, and for rows whose
// id does not decode. Absence is confirmed against the users table so it
// does not depend on which error milo reports for a missing row.
func (u *Users) Find(ctx context.Context, id entityid.ID) (*domain.User, error) {
	if id.IsEmpty() {
		return nil, ErrNotFound
	}

	user := &domain.User{}
	err := u.store.FindByID(user, id.String())
	if errors.Is(err, pg.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		exists, existsErr := u.exists(ctx, id)
		if existsErr == nil && !exists {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "find user %s", id)
	}
	if user.ID.IsEmpty() {
		return nil, ErrNotFound
	}
	return user, nil
}

func (u *Users) exists(ctx context.Context, id entityid.ID) (bool, error) {
	exists, err := u.db.ModelContext(ctx, (*user)(nil)).Where("id = ?", id).Exists()
	return exists, errors.Wrapf(err, "check user %s", id)
}

func (u *Users) Save(ctx context.Context, user *domain.User) error {
	if user.ID.IsEmpty() {
		return ErrEmptyID
	}
	return errors.Wrapf(u.store.Save(ctx, user), "save user %s", user.ID)
}
