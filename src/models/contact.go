package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact is a message left through the website contact form.
type Contact struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name" validate:"required"`
	Email      string             `json:"email" bson:"email" validate:"required,email"`
	Company    string             `json:"company,omitempty" bson:"company,omitempty"`
	Phone      string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Subject    string             `json:"subject" bson:"subject" validate:"required"`
	Message    string             `json:"message" bson:"message" validate:"required"`
	Source     string             `json:"source,omitempty" bson:"source,omitempty"`
	Interest   string             `json:"interest,omitempty" bson:"interest,omitempty"`
	ResumeLink string             `json:"resumeLink,omitempty" bson:"resumeLink,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

// CustomEmailRequest asks for a free text email to an arbitrary address.
type CustomEmailRequest struct {
	ToEmail string `json:"toEmail" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}
