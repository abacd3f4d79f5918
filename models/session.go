package models

import "time"

// LocalSession is the signed-in state the terminal client keeps between runs.
type LocalSession struct {
	UserID  int64     `json:"user_id"`
	Email   string    `json:"email"`
	Token   string    `json:"-"`
	SavedAt time.Time `json:"saved_at"`
}
