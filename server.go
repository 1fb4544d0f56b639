package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/DillonStreator/safeid/domain"
	"github.com/DillonStreator/safeid/entityid"
	"github.com/DillonStreator/safeid/jwt"
	"github.com/DillonStreator/safeid/passwords"
	"github.com/DillonStreator/safeid/storage"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

type userContextKey string

var USER_CONTEXT_KEY = userContextKey("user")

type userRepository interface {
	Find(ctx context.Context, id entityid.ID) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) error
}

type rates struct {
	Global       limiter.Rate
	UserCreation limiter.Rate
	TodoCreation limiter.Rate
}

var defaultRates = rates{
	Global:       limiter.Rate{Period: 1 * time.Second, Limit: 10},
	UserCreation: limiter.Rate{Period: 1 * time.Hour, Limit: 5},
	TodoCreation: limiter.Rate{Period: 1 * time.Hour, Limit: 100},
}

type idResponse struct {
	ID    entityid.ID `json:"id"`
	Empty bool        `json:"empty"`
	Hash  uint64      `json:"hash"`
}

func newIDResponse(id entityid.ID) idResponse {
	return idResponse{ID: id, Empty: id.IsEmpty(), Hash: id.Hash()}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionRequest struct {
	UserID   entityid.ID `json:"userId"`
	Password string      `json:"password"`
}

type sessionResponse struct {
	Token string `json:"token"`
}

func getUserFromRequest(r *http.Request) *domain.User {
	return r.Context().Value(USER_CONTEXT_KEY).(*domain.User)
}

func newInMemoryLimiterMiddleware(r limiter.Rate) *stdlib.Middleware {
	store := memory.NewStore()
	limiter := limiter.New(store, r)
	return stdlib.NewMiddleware(limiter)
}

func decodeStrict(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func writeJSON(rw http.ResponseWriter, status int, v interface{}) {
	bytes, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("marshal response")
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(bytes)
}

// Client errors echo the cause; server errors only report the status text.
func writeError(rw http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("request failed")
		rw.WriteHeader(status)
		rw.Write([]byte(http.StatusText(status)))
		return
	}

	log.Debug().Err(err).Int("status", status).Msg("request rejected")
	rw.WriteHeader(status)
	rw.Write([]byte(err.Error()))
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func getMux(users userRepository, rates rates) http.Handler {
	r := chi.NewRouter()

	requestLimiter := newInMemoryLimiterMiddleware(rates.Global)
	r.Use(requestLimiter.Handler)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			rw.Header().Add("Content-Type", "application/json")
			next.ServeHTTP(rw, r)
		})
	})

	r.Get("/", func(rw http.ResponseWriter, r *http.Request) {
		http.Redirect(rw, r, "/status", http.StatusPermanentRedirect)
	})
	r.Get("/status", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
		rw.Write([]byte("🌈"))
	})

	r.Route("/ids", func(idsRouter chi.Router) {
		idsRouter.Post("/", func(rw http.ResponseWriter, r *http.Request) {
			writeJSON(rw, http.StatusCreated, newIDResponse(entityid.Generator.Generate()))
		})
		// Malformed text is not a client error: it parses to the empty id.
		idsRouter.Get("/{text}", func(rw http.ResponseWriter, r *http.Request) {
			writeJSON(rw, http.StatusOK, newIDResponse(entityid.Parse(chi.URLParam(r, "text"))))
		})
	})

	r.Route("/users", func(usersRouter chi.Router) {
		userCreationLimiter := newInMemoryLimiterMiddleware(rates.UserCreation)
		usersRouter.Use(userCreationLimiter.Handler)
		usersRouter.Post("/", func(rw http.ResponseWriter, r *http.Request) {
			var input credentials
			if err := decodeStrict(r, &input); err != nil {
				writeError(rw, http.StatusBadRequest, err)
				return
			}
			if input.Email == "" || input.Password == "" {
				writeError(rw, http.StatusBadRequest, errors.New("email and password are required"))
				return
			}

			hashed, err := passwords.Hash(input.Password)
			if err != nil {
				writeError(rw, http.StatusInternalServerError, err)
				return
			}

			var user = &domain.User{
				ID:         entityid.Generator.Generate(),
				Email:      input.Email,
				Password:   hashed,
				CreatedAt:  time.Now(),
				LastSeenAt: time.Now(),
				Todos:      make(domain.Todos, 0),
			}
			if err := users.Save(r.Context(), user); err != nil {
				writeError(rw, http.StatusInternalServerError, err)
				return
			}

			writeJSON(rw, http.StatusCreated, user)
		})
	})

	r.Post("/sessions", func(rw http.ResponseWriter, r *http.Request) {
		var input sessionRequest
		if err := decodeStrict(r, &input); err != nil {
			writeError(rw, http.StatusBadRequest, err)
			return
		}

		user, err := users.Find(r.Context(), input.UserID)
		if errors.Is(err, storage.ErrNotFound) {
			rw.WriteHeader(http.StatusUnauthorized)
			return
		}
		if err != nil {
			writeError(rw, http.StatusInternalServerError, err)
			return
		}

		err = passwords.Compare(user.Password, input.Password)
		if errors.Is(err, passwords.ErrMismatch) {
			rw.WriteHeader(http.StatusUnauthorized)
			return
		}
		if err != nil {
			writeError(rw, http.StatusInternalServerError, err)
			return
		}

		token, err := jwt.SignJWT(jwt.Input{UserID: user.ID, Email: user.Email})
		if err != nil {
			writeError(rw, http.StatusInternalServerError, err)
			return
		}

		writeJSON(rw, http.StatusOK, sessionResponse{Token: token})
	})

	r.Route("/todos", func(todosRouter chi.Router) {
		todosRouter.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
				token := bearerToken(r)
				if token == "" {
					rw.WriteHeader(http.StatusUnauthorized)
					return
				}
				claims, err := jwt.Verify(token)
				if err != nil {
					log.Debug().Err(err).Msg("rejected token")
					rw.WriteHeader(http.StatusUnauthorized)
					return
				}

				user, err := users.Find(r.Context(), claims.UserID)
				if errors.Is(err, storage.ErrNotFound) {
					rw.WriteHeader(http.StatusNotFound)
					return
				}
				if err != nil {
					writeError(rw, http.StatusInternalServerError, err)
					return
				}

				user.LastSeenAt = time.Now()
				if err := users.Save(r.Context(), user); err != nil {
					writeError(rw, http.StatusInternalServerError, err)
					return
				}

				ctx := context.WithValue(r.Context(), USER_CONTEXT_KEY, user)
				next.ServeHTTP(rw, r.WithContext(ctx))
			})
		})

		todosRouter.Get("/", func(rw http.ResponseWriter, r *http.Request) {
			user := getUserFromRequest(r)
			var todos = make(domain.Todos, 0)
			todos = append(todos, user.Todos...)
			writeJSON(rw, http.StatusOK, todos)
		})
		todoCreationLimiter := newInMemoryLimiterMiddleware(rates.TodoCreation)
		todosRouter.With(todoCreationLimiter.Handler).Post("/", func(rw http.ResponseWriter, r *http.Request) {
			user := getUserFromRequest(r)

			var todo = &domain.Todo{}
			if err := decodeStrict(r, todo); err != nil {
				writeError(rw, http.StatusBadRequest, err)
				return
			}

			todo.ID = entityid.Generator.Generate()
			todo.CreatedAt = time.Now()
			todo.UpdatedAt = time.Now()
			user.Todos = append(user.Todos, todo)
			if err := users.Save(r.Context(), user); err != nil {
				writeError(rw, http.StatusInternalServerError, err)
				return
			}

			writeJSON(rw, http.StatusCreated, todo)
		})
		todosRouter.Put("/{todoID}", func(rw http.ResponseWriter, r *http.Request) {
			user := getUserFromRequest(r)

			todoID := entityid.Parse(chi.URLParam(r, "todoID"))
			todo := user.Todos.FindByID(todoID)
			if todo.ID.IsEmpty() {
				rw.WriteHeader(http.StatusNotFound)
				return
			}

			var updatedTodo = &domain.Todo{
				Completed:   todo.Completed,
				Title:       todo.Title,
				Description: todo.Description,
			}
			if err := decodeStrict(r, updatedTodo); err != nil {
				writeError(rw, http.StatusBadRequest, err)
				return
			}

			todo.Completed = updatedTodo.Completed
			todo.Title = updatedTodo.Title
			todo.Description = updatedTodo.Description
			todo.UpdatedAt = time.Now()

			if err := users.Save(r.Context(), user); err != nil {
				writeError(rw, http.StatusInternalServerError, err)
				return
			}

			writeJSON(rw, http.StatusOK, todo)
		})
		todosRouter.Delete("/{todoID}", func(rw http.ResponseWriter, r *http.Request) {
			user := getUserFromRequest(r)

			todoID := entityid.Parse(chi.URLParam(r, "todoID"))
			index := user.Todos.FindIndexByID(todoID)
			if index == -1 {
				rw.WriteHeader(http.StatusNotFound)
				return
			}

			user.Todos = append(user.Todos[:index], user.Todos[index+1:]...)
			if err := users.Save(r.Context(), user); err != nil {
				writeError(rw, http.StatusInternalServerError, err)
				return
			}

			rw.WriteHeader(http.StatusNoContent)
		})
	})

	return r
}
