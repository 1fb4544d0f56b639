package domain

import (
	"time"

	"github.com/DillonStreator/safeid/entityid"
)

type User struct {
	ID         entityid.ID `json:"id"`
	Email      string      `json:"email"`
	Password   string      `json:"-"`
	CreatedAt  time.Time   `json:"createdAt"`
	LastSeenAt time.Time   `json:"lastSeenAt"`
	Todos      Todos       `json:"todos"`
}

type Todos []*Todo

// FindByID returns a zero Todo, whose ID is entityid.Empty, when id is absent.
func (todos Todos) FindByID(id entityid.ID) *Todo {
	if index := todos.FindIndexByID(id); index != -1 {
		return todos[index]
	}
	return &Todo{}
}

func (todos Todos) FindIndexByID(id entityid.ID) int {
	if id.IsEmpty() {
		return -1
	}
	for i, todo := range todos {
		if todo.ID == id {
			return i
		}
	}
	return -1
}

func (todos Todos) Index() map[entityid.ID]*Todo {
	index := make(map[entityid.ID]*Todo, len(todos))
	for _, todo := range todos {
		index[todo.ID] = todo
	}
	return index
}

type Todo struct {
	ID          entityid.ID `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Completed   bool        `json:"completed"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
