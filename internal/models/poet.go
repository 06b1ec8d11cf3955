package models

import (
	"time"

	"gorm.io/gorm"
)

type MediaType string

const (
	MediaAudio MediaType = "AUDIO"
	MediaVideo MediaType = "VIDEO"
)

type Poet struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"not null;size:200;index"`
	Image       string     `json:"image" gorm:"size:500"`
	BirthDate   *time.Time `json:"birthDate"`
	DeathDate   *time.Time `json:"deathDate"`
	Description string     `json:"description" gorm:"type:text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Works []Work  `json:"works,omitempty" gorm:"foreignKey:PoetID"`
	Media []Media `json:"media,omitempty" gorm:"foreignKey:PoetID"`
}

type Work struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Title   string `json:"title" gorm:"not null;size:300"`
	Link    string `json:"link" gorm:"size:500"`
	Content string `json:"content" gorm:"type:text"`
	PoetID  uint   `json:"poetId" gorm:"not null;index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Poet  *Poet   `json:"poet,omitempty" gorm:"foreignKey:PoetID"`
	Media []Media `json:"media,omitempty" gorm:"foreignKey:WorkID"`
}

// Media is an audio or video attachment of a poet or a single work.
// Exactly one of PoetID / WorkID is set.
type Media struct {
	ID     uint      `json:"id" gorm:"primaryKey"`
	Title  string    `json:"title" gorm:"not null;size:300"`
	URL    string    `json:"url" gorm:"not null;size:500"`
	Type   MediaType `json:"type" gorm:"not null;size:10"`
	PoetID *uint     `json:"poetId" gorm:"index"`
	WorkID *uint     `json:"workId" gorm:"index"`
}

func (Poet) TableName() string {
	return "poets"
}

func (Work) TableName() string {
	return "works"
}

func (Media) TableName() string {
	return "media"
}
