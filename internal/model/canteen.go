package model

import "time"

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type MenuItem struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	IsAvailable   bool      `json:"isAvailable"`
	AverageRating float64   `json:"averageRating"`
	ImageURL      string    `json:"imageUrl"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Rating struct {
	ID         int64     `json:"id"`
	MenuItemID int64     `json:"menuItemId"`
	UserID     int64     `json:"userId"`
	Score      int       `json:"score"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CrowdSample struct {
	ID          int64     `json:"id"`
	PersonCount int       `json:"personCount"`
	CreatedAt   time.Time `json:"createdAt"`
}
