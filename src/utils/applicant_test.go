package utils

import (
	"testing"

	"nextglide-backend/src/models"

	"github.com/stretchr/testify/assert"
)

func TestExtractApplicant(t *testing.T) {
	testCases := []struct {
		name      string
		values    []models.Value
		wantEmail string
		wantName  string
	}{
		{
			name: "name before email",
			values: []models.Value{
				models.StringValue("Jane Doe"),
				models.StringValue("jane@example.com"),
			},
			wantEmail: "jane@example.com",
			wantName:  "Jane Doe",
		},
		{
			name: "email first is skipped for name",
			values: []models.Value{
				models.StringValue("jane@example.com"),
				models.StringValue("Jane Doe"),
			},
			wantEmail: "jane@example.com",
			wantName:  "Jane Doe",
		},
		{
			name: "first of several emails wins",
			values: []models.Value{
				models.StringValue("first@example.com"),
				models.StringValue("second@example.com"),
			},
			wantEmail: "first@example.com",
			wantName:  "second@example.com",
		},
		{
			name: "no string longer than two characters",
			values: []models.Value{
				models.StringValue("ab"),
				models.StringValue("x"),
				models.BoolValue(true),
			},
		},
		{
			name: "at sign without domain dot is not an email",
			values: []models.Value{
				models.StringValue("me@localhost"),
			},
			wantName: "me@localhost",
		},
		{
			name: "single item list counts as text",
			values: []models.Value{
				models.ListValue("list@example.com"),
				models.ListValue("Bob"),
			},
			wantEmail: "list@example.com",
			wantName:  "Bob",
		},
		{
			name: "longer lists and booleans are ignored",
			values: []models.Value{
				models.ListValue("a@example.com", "b@example.com"),
				models.BoolValue(false),
				models.StringValue("Bob"),
			},
			wantName: "Bob",
		},
		{
			name: "length counts characters not bytes",
			values: []models.Value{
				models.StringValue("éé"),
				models.StringValue("Zoë"),
			},
			wantName: "Zoë",
		},
		{
			name:   "empty",
			values: nil,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			email, name := ExtractApplicant(tc.values)
			assert.Equal(t, tc.wantEmail, email)
			assert.Equal(t, tc.wantName, name)
		})
	}
}

func TestValidateStruct(t *testing.T) {
	err := ValidateStruct(models.Contact{Name: "A", Email: "nope", Subject: "S", Message: "M"})
	assert.Equal(t, 400, StatusOf(err))
	assert.Equal(t, "email must be a valid email address", err.Error())

	err = ValidateStruct(models.Contact{Email: "a@b.com", Subject: "S", Message: "M"})
	assert.Equal(t, "name is required", err.Error())

	assert.NoError(t, ValidateStruct(models.Contact{Name: "A", Email: "a@b.com", Subject: "S", Message: "M"}))
}
