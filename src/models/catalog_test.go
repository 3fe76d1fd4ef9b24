package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validService = `{
	"name": "Cloud Migration",
	"shortDescription": "Move to the cloud",
	"category": "Cloud",
	"startingPrice": "$5,000",
	"slug": " cloud-migration "
}`

func TestDecodeCatalogItemDefaults(t *testing.T) {
	item, err := DecodeCatalogItem(ServiceKind, []byte(validService))
	require.NoError(t, err)
	require.NoError(t, item.Validate())

	assert.Equal(t, "cloud-migration", item.Slug)
	assert.Equal(t, "Apply Now", item.CtaText)
	assert.True(t, item.ConsultationAvailability)
	assert.True(t, item.IsOverviewVisible)
	assert.True(t, item.IsCtaVisible)
	assert.NotNil(t, item.KeyFeatures)
	assert.NotNil(t, item.DynamicSections)

	sol, err := DecodeCatalogItem(SolutionKind, []byte(validService))
	require.NoError(t, err)
	assert.Equal(t, "Learn More", sol.CtaText)
}

func TestDecodeCatalogItemExplicitFalseFlag(t *testing.T) {
	item, err := DecodeCatalogItem(ServiceKind, []byte(`{"isFaqsVisible": false, "consultationAvailability": false}`))
	require.NoError(t, err)
	assert.False(t, item.IsFaqsVisible)
	assert.False(t, item.ConsultationAvailability)
	assert.True(t, item.IsTrustVisible)
}

func TestCatalogItemValidate(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing slug",
			body:    `{"name":"n","shortDescription":"s","category":"c","startingPrice":"p"}`,
			wantErr: "slug is required",
		},
		{
			name:    "blank name",
			body:    `{"name":"  ","shortDescription":"s","category":"c","startingPrice":"p","slug":"x"}`,
			wantErr: "name is required",
		},
		{
			name: "array field with string value",
			body: `{"name":"n","shortDescription":"s","category":"c","startingPrice":"p","slug":"x",
				"dynamicSections":[{"title":"T","fields":[{"label":"L","fieldType":"array","value":"oops"}]}]}`,
			wantErr: `field "L": string value does not match fieldType "array"`,
		},
		{
			name: "boolean field with list value",
			body: `{"name":"n","shortDescription":"s","category":"c","startingPrice":"p","slug":"x",
				"dynamicSections":[{"title":"T","fields":[{"label":"L","fieldType":"boolean","value":["a"]}]}]}`,
			wantErr: "does not match",
		},
		{
			name: "unknown field type",
			body: `{"name":"n","shortDescription":"s","category":"c","startingPrice":"p","slug":"x",
				"dynamicSections":[{"title":"T","fields":[{"label":"L","fieldType":"number"}]}]}`,
			wantErr: `unknown fieldType "number"`,
		},
		{
			name: "unknown layout",
			body: `{"name":"n","shortDescription":"s","category":"c","startingPrice":"p","slug":"x",
				"dynamicSections":[{"title":"T","layoutType":"masonry"}]}`,
			wantErr: `unknown layoutType "masonry"`,
		},
		{
			name: "unknown form field type",
			body: `{"name":"n","shortDescription":"s","category":"c","startingPrice":"p","slug":"x",
				"inquiryFormFields":[{"label":"Q","fieldType":"slider"}]}`,
			wantErr: `unknown fieldType "slider"`,
		},
		{
			name: "well typed fields",
			body: `{"name":"n","shortDescription":"s","category":"c","startingPrice":"p","slug":"x",
				"dynamicSections":[{"title":"T","fields":[
					{"label":"A","fieldType":"array","value":["1"]},
					{"label":"B","fieldType":"boolean","value":true},
					{"label":"C","value":"plain"},
					{"label":"D","fieldType":"textarea"}
				]}],
				"inquiryFormFields":[{"label":"Budget","fieldType":"dropdown","options":["<1k",">1k"]}]}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			item, err := DecodeCatalogItem(ServiceKind, []byte(tc.body))
			require.NoError(t, err)
			err = item.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestSectionDefaults(t *testing.T) {
	item, err := DecodeCatalogItem(ServiceKind, []byte(`{"dynamicSections":[{"title":"T"}],"inquiryFormFields":[{"label":"Q"}]}`))
	require.NoError(t, err)

	s := item.DynamicSections[0]
	assert.True(t, s.IsVisible)
	assert.Equal(t, LayoutFullWidth, s.LayoutType)
	assert.Equal(t, 0, s.Order)

	f := item.InquiryFormFields[0]
	assert.Equal(t, FormText, f.FieldType)
	assert.True(t, f.IsVisible)
	assert.False(t, f.Required)
}

func TestSortSectionsIsStable(t *testing.T) {
	sections := []Section{
		{Title: "b1", Order: 2},
		{Title: "a1", Order: 1},
		{Title: "b2", Order: 2},
		{Title: "z", Order: 0},
		{Title: "a2", Order: 1},
	}
	SortSections(sections)

	titles := make([]string, 0, len(sections))
	for _, s := range sections {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"z", "a1", "a2", "b1", "b2"}, titles)
}

func TestInquiryDisplayName(t *testing.T) {
	svc := Inquiry{ServiceName: "Audit"}
	assert.Equal(t, "Audit", svc.DisplayName())
	assert.Equal(t, "Service", svc.TypeLabel())

	sol := Inquiry{SolutionName: "ERP"}
	assert.Equal(t, "ERP", sol.DisplayName())
	assert.Equal(t, "Solution", sol.TypeLabel())
}
