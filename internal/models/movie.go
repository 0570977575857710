package models

import "time"

// Category is the fixed genre enumeration for movies.
type Category string

const (
	CategoryAction    Category = "action"
	CategoryAdventure Category = "adventure"
	CategoryComedy    Category = "comedy"
	CategoryDrama     Category = "drama"
	CategoryFantasy   Category = "fantasy"
	CategoryHorror    Category = "horror"
	CategoryMusical   Category = "musical"
	CategoryMystery   Category = "mystery"
	CategoryRomance   Category = "romance"
	CategoryScience   Category = "science"
	CategoryFiction   Category = "fiction"
	CategorySport     Category = "sport"
	CategoryThriller  Category = "thriller"
	CategoryWestern   Category = "western"
)

// Categories lists every valid Category value.
func Categories() []Category {
	return []Category{
		CategoryAction, CategoryAdventure, CategoryComedy, CategoryDrama,
		CategoryFantasy, CategoryHorror, CategoryMusical, CategoryMystery,
		CategoryRomance, CategoryScience, CategoryFiction, CategorySport,
		CategoryThriller, CategoryWestern,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Movie represents a movie record.
type Movie struct {
	ID        int64     `json:"id" validate:"required,gt=0"`
	Title     string    `json:"title" validate:"required,min=5,max=200"`
	Overview  string    `json:"overview" validate:"required,min=15,max=700"`
	Year      int       `json:"year" validate:"required,gte=1888,lte=2023"`
	Rating    float64   `json:"rating" validate:"gte=0,lte=10,rating_step"`
	Category  Category  `json:"category" validate:"required,category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
