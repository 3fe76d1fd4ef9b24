package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Job struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title" validate:"required"`
	Department  string             `json:"department,omitempty" bson:"department,omitempty"`
	Location    string             `json:"location,omitempty" bson:"location,omitempty"`
	Type        string             `json:"type,omitempty" bson:"type,omitempty"`
	Experience  string             `json:"experience,omitempty" bson:"experience,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// JobPatch carries the keys of a partial job update. Nil means absent.
type JobPatch struct {
	Title       *string `json:"title"`
	Department  *string `json:"department"`
	Location    *string `json:"location"`
	Type        *string `json:"type"`
	Experience  *string `json:"experience"`
	Description *string `json:"description"`
}

// JobFormField is one question of a job application form.
type JobFormField struct {
	ID          string   `json:"id" bson:"id"`
	Label       string   `json:"label" bson:"label"`
	Type        string   `json:"type" bson:"type"`
	Required    bool     `json:"required" bson:"required"`
	Options     []string `json:"options,omitempty" bson:"options,omitempty"`
	Placeholder string   `json:"placeholder,omitempty" bson:"placeholder,omitempty"`
}

// JobForm is the application form of one job.
type JobForm struct {
	ID        primitive.ObjectID `json:"_id,omitzero" bson:"_id,omitempty"`
	JobID     primitive.ObjectID `json:"jobId" bson:"jobId"`
	Fields    []JobFormField     `json:"fields" bson:"fields"`
	UpdatedAt time.Time          `json:"updatedAt,omitzero" bson:"updatedAt,omitempty"`
}

type JobFormRequest struct {
	JobID  string         `json:"jobId" validate:"required"`
	Fields []JobFormField `json:"fields"`
}

// Application is a submitted job application form.
type Application struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	JobID       primitive.ObjectID `json:"jobId" bson:"jobId"`
	FormData    FormData           `json:"formData" bson:"formData"`
	Email       string             `json:"email,omitempty" bson:"email,omitempty"`
	Name        string             `json:"name,omitempty" bson:"name,omitempty"`
	SubmittedAt time.Time          `json:"submittedAt" bson:"submittedAt"`
}

type ApplicationRequest struct {
	JobID    string   `json:"jobId"`
	FormData FormData `json:"formData"`
}
