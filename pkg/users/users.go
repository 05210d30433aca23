// Package users provides the user directory for filmdesk: identity
// resolution by username and per-user rating storage.
//
// Like the catalog, the directory is single-writer process-local state
// and performs no internal locking.
package users

import (
	"strings"

	"github.com/filmdesk/filmdesk/pkg/errors"
)

// User is a directory entry. ID is assigned once at creation and never
// changes; RatingMap holds the authoritative copy of the user's ratings,
// keyed by film title.
type User struct {
	ID        int                `json:"id"`
	Username  string             `json:"username"`
	RatingMap map[string]float64 `json:"ratingMap"`
}

// Rating returns the user's rating for a film title, if any.
func (u *User) Rating(title string) (float64, bool) {
	rating, ok := u.RatingMap[title]
	return rating, ok
}

// Directory is the collection of known users.
type Directory struct {
	users []*User
	index map[string]*User
}

// NewDirectory creates an empty user directory.
func NewDirectory() *Directory {
	return &Directory{
		index: make(map[string]*User),
	}
}

// NewDirectoryFromRecords creates a directory from loaded user records.
// Nil rating maps are backfilled to empty.
func NewDirectoryFromRecords(records []User) *Directory {
	dir := NewDirectory()
	for i := range records {
		user := records[i]
		if user.RatingMap == nil {
			user.RatingMap = make(map[string]float64)
		}
		dir.users = append(dir.users, &user)
		dir.index[user.Username] = &user
	}
	return dir
}

// validateUsername rejects empty or whitespace-only usernames.
func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return errors.NewValidationError("username", username, "username must not be empty")
	}
	return nil
}

// Find looks up a user by exact username match.
func (d *Directory) Find(username string) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	user, ok := d.index[username]
	if !ok {
		return nil, errors.NewNotFoundError("user", username)
	}
	return user, nil
}

// Exists reports whether a username is already registered.
func (d *Directory) Exists(username string) bool {
	_, ok := d.index[username]
	return ok
}

// Create registers a new user under the given name and assigns the next
// identifier. Creation is the caller's decision: resolve-or-create flows
// must confirm with the user before calling Create, never silently.
func (d *Directory) Create(username string) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if d.Exists(username) {
		return nil, errors.NewValidationError("username", username, "user already exists")
	}

	user := &User{
		ID:        d.nextID(),
		Username:  username,
		RatingMap: make(map[string]float64),
	}
	d.users = append(d.users, user)
	d.index[username] = user
	return user, nil
}

// nextID returns max(existing ids) + 1, starting at 1.
func (d *Directory) nextID() int {
	max := 0
	for _, user := range d.users {
		if user.ID > max {
			max = user.ID
		}
	}
	return max + 1
}

// RecordRating upserts a rating into the user's rating map, creating the
// user record if none exists under this name. This backfill path keeps
// the rating flow working even when the directory record went missing.
func (d *Directory) RecordRating(username, title string, rating float64) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	user, ok := d.index[username]
	if !ok {
		created, err := d.Create(username)
		if err != nil {
			return nil, err
		}
		user = created
	}
	user.RatingMap[title] = rating
	return user, nil
}

// List returns the users in creation order. The slice is a copy; the
// users are shared references.
func (d *Directory) List() []*User {
	users := make([]*User, len(d.users))
	copy(users, d.users)
	return users
}

// Records returns a value snapshot suitable for persistence.
func (d *Directory) Records() []User {
	records := make([]User, 0, len(d.users))
	for _, user := range d.users {
		records = append(records, *user)
	}
	return records
}

// Len returns the number of registered users.
func (d *Directory) Len() int {
	return len(d.users)
}
