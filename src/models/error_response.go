package models

import "time"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DataResponse is an acknowledgement that carries the stored document.
type DataResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// MailEvent is one delivery event posted by the mail provider.
type MailEvent struct {
	Event string `json:"event"`
	Email string `json:"email"`
}

// HealthResponse reports liveness and database reachability.
type HealthResponse struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	Env            string    `json:"env"`
	MongoConnected bool      `json:"mongo_connected"`
}

type CollectionCount struct {
	Collection string `json:"collection"`
	Count      int64  `json:"count"`
}
