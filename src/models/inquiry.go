package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InquiryStatus string

const (
	InquiryNew        InquiryStatus = "New"
	InquiryContacted  InquiryStatus = "Contacted"
	InquiryInProgress InquiryStatus = "In Progress"
	InquiryClosed     InquiryStatus = "Closed"
)

func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryNew, InquiryContacted, InquiryInProgress, InquiryClosed:
		return true
	}
	return false
}

// CustomResponse is one answered question of an inquiry form, kept as
// submitted.
type CustomResponse struct {
	Question string `json:"question" bson:"question"`
	Answer   Value  `json:"answer" bson:"answer"`
}

func (r *CustomResponse) UnmarshalJSON(data []byte) error {
	var wire struct {
		Question string          `json:"question"`
		Answer   json.RawMessage `json:"answer"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	answer, err := DecodeAnswer(wire.Answer)
	if err != nil {
		return err
	}
	*r = CustomResponse{Question: wire.Question, Answer: answer}
	return nil
}

// Inquiry is a submission against a service or a solution. Exactly one
// of the service or solution reference pairs is set, matching the
// collection it is stored in.
type Inquiry struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	FullName string             `json:"fullName" bson:"fullName" validate:"required"`
	Email    string             `json:"email" bson:"email" validate:"required"`
	Phone    string             `json:"phone" bson:"phone" validate:"required"`
	Company  string             `json:"company,omitempty" bson:"company,omitempty"`

	ServiceID    *primitive.ObjectID `json:"serviceId,omitempty" bson:"serviceId,omitempty"`
	ServiceName  string              `json:"serviceName,omitempty" bson:"serviceName,omitempty"`
	SolutionID   *primitive.ObjectID `json:"solutionId,omitempty" bson:"solutionId,omitempty"`
	SolutionName string              `json:"solutionName,omitempty" bson:"solutionName,omitempty"`

	EstimatedBudget string           `json:"estimatedBudget,omitempty" bson:"estimatedBudget,omitempty"`
	Source          string           `json:"source,omitempty" bson:"source,omitempty"`
	Requirements    string           `json:"requirements" bson:"requirements" validate:"required"`
	CustomResponses []CustomResponse `json:"customResponses" bson:"customResponses"`
	Status          InquiryStatus    `json:"status" bson:"status"`
	CreatedAt       time.Time        `json:"createdAt" bson:"createdAt"`
}

// DisplayName is the snapshot of the item name taken at submission.
func (i Inquiry) DisplayName() string {
	if i.ServiceName != "" {
		return i.ServiceName
	}
	return i.SolutionName
}

// TypeLabel names the kind of item the inquiry targets.
func (i Inquiry) TypeLabel() string {
	if i.SolutionName != "" {
		return SolutionKind.Name
	}
	return ServiceKind.Name
}

// InquiryStatusRequest is the body of a status transition request.
type InquiryStatusRequest struct {
	Status InquiryStatus `json:"status"`
}
