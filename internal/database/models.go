package database

import "time"

// Material is the teaching content for one level and week.
type Material struct {
	ID        int64     `db:"id"`
	Level     string    `db:"level"`
	Week      string    `db:"week"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Learner records the preferences a chat client reported through /save_user.
type Learner struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Level     string    `db:"level"`
	Week      string    `db:"week"`
	Gender    string    `db:"gender"`
	Language  string    `db:"language"`
	CreatedAt time.Time `db:"created_at"`
}

// ContactMessage is a submission of the contact form.
type ContactMessage struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}
