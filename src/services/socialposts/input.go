package socialposts

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"nextglide-backend/src/models"
	"nextglide-backend/src/utils"
)

// Upload is an image sent with a create or update request.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// PatchFromJSON reads a JSON request body. Hashtags may be sent as an
// array or as one string.
func PatchFromJSON(body []byte) (models.PostPatch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.PostPatch{}, utils.Validation("Invalid input: %v", err)
	}
	var patch models.PostPatch
	for key, dst := range map[string]**string{
		"title":       &patch.Title,
		"categoryId":  &patch.CategoryID,
		"caption":     &patch.Caption,
		"imageUrl":    &patch.ImageURL,
		"scheduledAt": &patch.ScheduledAt,
		"status":      &patch.Status,
	} {
		msg, ok := raw[key]
		if !ok {
			continue
		}
		var s *string
		if err := json.Unmarshal(msg, &s); err != nil {
			return models.PostPatch{}, utils.Validation("%s must be a string", key)
		}
		if s == nil {
			s = new(string)
		}
		*dst = s
	}
	if msg, ok := raw["hashtags"]; ok {
		tags, err := decodeHashtags(msg)
		if err != nil {
			return models.PostPatch{}, err
		}
		patch.Hashtags, patch.HasHashtags = tags, true
	}
	if msg, ok := raw["isHidden"]; ok {
		var hidden any
		_ = json.Unmarshal(msg, &hidden)
		b := hidden == true || hidden == "true"
		patch.IsHidden = &b
	}
	return patch, nil
}

func decodeHashtags(msg json.RawMessage) ([]string, error) {
	var list []string
	if err := json.Unmarshal(msg, &list); err == nil {
		return cleanHashtags(list), nil
	}
	var s *string
	if err := json.Unmarshal(msg, &s); err != nil {
		return nil, utils.Validation("hashtags must be a string or a list of strings")
	}
	if s == nil {
		return []string{}, nil
	}
	return ParseHashtags(*s), nil
}

// PatchFromForm reads multipart form values. Only keys present in values
// are set.
func PatchFromForm(values map[string][]string) models.PostPatch {
	get := func(key string) *string {
		v, ok := values[key]
		if !ok || len(v) == 0 {
			return nil
		}
		s := v[0]
		return &s
	}
	patch := models.PostPatch{
		Title:       get("title"),
		CategoryID:  get("categoryId"),
		Caption:     get("caption"),
		ImageURL:    get("imageUrl"),
		ScheduledAt: get("scheduledAt"),
		Status:      get("status"),
	}
	if tags, ok := values["hashtags"]; ok {
		patch.HasHashtags = true
		patch.Hashtags = []string{}
		for _, t := range tags {
			patch.Hashtags = append(patch.Hashtags, ParseHashtags(t)...)
		}
	}
	if hidden := get("isHidden"); hidden != nil {
		b, _ := strconv.ParseBool(*hidden)
		patch.IsHidden = &b
	}
	return patch
}

// ParseHashtags splits "#go, #mongo #fiber" into its tags.
func ParseHashtags(s string) []string {
	return cleanHashtags(strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	}))
}

func cleanHashtags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

var scheduleLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", time.DateOnly}

// parseSchedule accepts RFC3339, an HTML datetime-local value or a bare
// date. Values without a zone are read as UTC. Empty and "null" clear it.
func parseSchedule(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return nil, nil
	}
	for _, layout := range scheduleLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, utils.Validation("Invalid scheduledAt")
}
