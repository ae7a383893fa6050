package domain

import (
	"strings"
	"time"
)

// User represents a registered student account.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Strand       Strand
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// NewUser creates a new User instance
func NewUser(username, email, passwordHash string, strand Strand) *User {
	now := time.Now()
	return &User{
		Username:     username,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		Strand:       strand,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate validates the user
func (u *User) Validate() error {
	if u.Username == "" {
		return NewMissingFieldError("username")
	}
	if u.Email == "" {
		return NewMissingFieldError("email")
	}
	if u.PasswordHash == "" {
		return NewMissingFieldError("password")
	}
	if _, err := ParseStrand(string(u.Strand)); err != nil {
		return err
	}
	return nil
}

// Post is one entry in the strand discussion feed.
type Post struct {
	ID        string
	Author    string
	Strand    Strand
	Content   string
	Likes     int
	CreatedAt time.Time
}

// NewPost creates a new Post instance
func NewPost(author string, strand Strand, content string) *Post {
	return &Post{
		Author:    author,
		Strand:    strand,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// Validate validates the post
func (p *Post) Validate() error {
	if strings.TrimSpace(p.Content) == "" {
		return NewMissingFieldError("content")
	}
	if p.Author == "" {
		return NewMissingFieldError("author")
	}
	return nil
}
