package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// FieldType is the declared shape of a content field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldArray    FieldType = "array"
	FieldBoolean  FieldType = "boolean"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldTextarea, FieldArray, FieldBoolean:
		return true
	}
	return false
}

// Accepts reports whether a value of kind k may be stored under t.
func (t FieldType) Accepts(k ValueKind) bool {
	if k == KindNone {
		return true
	}
	switch t {
	case FieldArray:
		return k == KindStringList
	case FieldBoolean:
		return k == KindBoolean
	default:
		return k == KindString
	}
}

// Field is a labelled content value inside a Section.
type Field struct {
	Label     string    `json:"label" bson:"label"`
	Value     Value     `json:"value,omitzero" bson:"value,omitempty"`
	FieldType FieldType `json:"fieldType" bson:"fieldType"`
}

func (f *Field) UnmarshalJSON(b []byte) error {
	type alias Field
	a := alias{FieldType: FieldText}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*f = Field(a)
	return nil
}

func (f Field) Validate() error {
	if strings.TrimSpace(f.Label) == "" {
		return fmt.Errorf("field label is required")
	}
	if !f.FieldType.Valid() {
		return fmt.Errorf("field %q: unknown fieldType %q", f.Label, f.FieldType)
	}
	if !f.FieldType.Accepts(f.Value.Kind()) {
		return fmt.Errorf("field %q: %s value does not match fieldType %q", f.Label, f.Value.Kind(), f.FieldType)
	}
	return nil
}

// LayoutType is a rendering hint for a Section.
type LayoutType string

const (
	LayoutGrid2     LayoutType = "grid-2"
	LayoutFullWidth LayoutType = "full-width"
	LayoutChecklist LayoutType = "checklist"
	LayoutCards     LayoutType = "cards"
)

func (l LayoutType) Valid() bool {
	switch l {
	case LayoutGrid2, LayoutFullWidth, LayoutChecklist, LayoutCards:
		return true
	}
	return false
}

type Section struct {
	Title      string     `json:"title" bson:"title"`
	IsVisible  bool       `json:"isVisible" bson:"isVisible"`
	LayoutType LayoutType `json:"layoutType" bson:"layoutType"`
	Order      int        `json:"order" bson:"order"`
	Fields     []Field    `json:"fields" bson:"fields"`
}

func (s *Section) UnmarshalJSON(b []byte) error {
	type alias Section
	a := alias{IsVisible: true, LayoutType: LayoutFullWidth}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if a.Fields == nil {
		a.Fields = []Field{}
	}
	*s = Section(a)
	return nil
}

func (s Section) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("section title is required")
	}
	if !s.LayoutType.Valid() {
		return fmt.Errorf("section %q: unknown layoutType %q", s.Title, s.LayoutType)
	}
	for _, f := range s.Fields {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("section %q: %w", s.Title, err)
		}
	}
	return nil
}

// SortSections orders sections by ascending Order. Equal orders keep
// their relative position.
func SortSections(sections []Section) {
	slices.SortStableFunc(sections, func(a, b Section) int {
		return a.Order - b.Order
	})
}

// FormFieldType is the input kind of an inquiry form field.
type FormFieldType string

const (
	FormText     FormFieldType = "text"
	FormTextarea FormFieldType = "textarea"
	FormDropdown FormFieldType = "dropdown"
	FormCheckbox FormFieldType = "checkbox"
	FormRadio    FormFieldType = "radio"
)

func (t FormFieldType) Valid() bool {
	switch t {
	case FormText, FormTextarea, FormDropdown, FormCheckbox, FormRadio:
		return true
	}
	return false
}

// FormField describes one question of a catalog item's inquiry form.
type FormField struct {
	Label       string        `json:"label" bson:"label"`
	FieldType   FormFieldType `json:"fieldType" bson:"fieldType"`
	Options     []string      `json:"options" bson:"options"`
	Required    bool          `json:"required" bson:"required"`
	IsVisible   bool          `json:"isVisible" bson:"isVisible"`
	Placeholder string        `json:"placeholder,omitempty" bson:"placeholder,omitempty"`
}

func (f *FormField) UnmarshalJSON(b []byte) error {
	type alias FormField
	a := alias{FieldType: FormText, IsVisible: true}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if a.Options == nil {
		a.Options = []string{}
	}
	*f = FormField(a)
	return nil
}

func (f FormField) Validate() error {
	if strings.TrimSpace(f.Label) == "" {
		return fmt.Errorf("form field label is required")
	}
	if !f.FieldType.Valid() {
		return fmt.Errorf("form field %q: unknown fieldType %q", f.Label, f.FieldType)
	}
	return nil
}
