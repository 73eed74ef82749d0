package models

import "time"

type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	AvatarURL      string    `json:"avatar_url"`
	SolvedProblems int       `json:"solved_problems"`
	Accuracy       int       `json:"accuracy"`
	CreatedAt      time.Time `json:"created_at"`
}
