package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogKind distinguishes the two catalog collections. Services and
// solutions share one document shape.
type CatalogKind struct {
	Name              string // "Service" | "Solution"
	Collection        string
	InquiryCollection string
	DefaultCTA        string
}

var (
	ServiceKind = CatalogKind{
		Name:              "Service",
		Collection:        "services",
		InquiryCollection: "serviceinquiries",
		DefaultCTA:        "Apply Now",
	}
	SolutionKind = CatalogKind{
		Name:              "Solution",
		Collection:        "solutions",
		InquiryCollection: "solutioninquiries",
		DefaultCTA:        "Learn More",
	}
)

type Testimonial struct {
	Name    string `json:"name" bson:"name"`
	Role    string `json:"role" bson:"role"`
	Comment string `json:"comment" bson:"comment"`
}

type FAQ struct {
	Question string `json:"question" bson:"question"`
	Answer   string `json:"answer" bson:"answer"`
}

// CatalogItem is a service or solution page.
type CatalogItem struct {
	ID primitive.ObjectID `json:"_id" bson:"_id,omitempty"`

	// Listing
	Name             string `json:"name" bson:"name"`
	ShortDescription string `json:"shortDescription" bson:"shortDescription"`
	Category         string `json:"category" bson:"category"`
	StartingPrice    string `json:"startingPrice" bson:"startingPrice"`
	CtaText          string `json:"ctaText" bson:"ctaText"`
	Slug             string `json:"slug" bson:"slug"`

	// Overview
	DetailedDescription string   `json:"detailedDescription,omitempty" bson:"detailedDescription,omitempty"`
	ProblemsSolved      []string `json:"problemsSolved" bson:"problemsSolved"`
	TargetAudience      []string `json:"targetAudience" bson:"targetAudience"`

	// Offering
	KeyFeatures   []string `json:"keyFeatures" bson:"keyFeatures"`
	CoverageAreas []string `json:"coverageAreas" bson:"coverageAreas"`
	Technologies  []string `json:"technologies" bson:"technologies"`

	// Experience
	YearsExperience   string   `json:"yearsExperience,omitempty" bson:"yearsExperience,omitempty"`
	ProjectsCompleted string   `json:"projectsCompleted,omitempty" bson:"projectsCompleted,omitempty"`
	IndustriesServed  []string `json:"industriesServed" bson:"industriesServed"`
	CaseStudies       string   `json:"caseStudies,omitempty" bson:"caseStudies,omitempty"`

	// Delivery
	Timeline                 string `json:"timeline,omitempty" bson:"timeline,omitempty"`
	PricingModel             string `json:"pricingModel,omitempty" bson:"pricingModel,omitempty"`
	ConsultationAvailability bool   `json:"consultationAvailability" bson:"consultationAvailability"`
	SupportDetails           string `json:"supportDetails,omitempty" bson:"supportDetails,omitempty"`

	// Trust
	Certifications  []string `json:"certifications" bson:"certifications"`
	Partnerships    []string `json:"partnerships" bson:"partnerships"`
	SecurityDetails string   `json:"securityDetails,omitempty" bson:"securityDetails,omitempty"`

	Testimonials []Testimonial `json:"testimonials" bson:"testimonials"`
	FAQs         []FAQ         `json:"faqs" bson:"faqs"`

	// CTA
	PrimaryCta   string `json:"primaryCta,omitempty" bson:"primaryCta,omitempty"`
	SecondaryCta string `json:"secondaryCta,omitempty" bson:"secondaryCta,omitempty"`
	NextSteps    string `json:"nextSteps,omitempty" bson:"nextSteps,omitempty"`

	DynamicSections []Section `json:"dynamicSections" bson:"dynamicSections"`

	IsOverviewVisible     bool `json:"isOverviewVisible" bson:"isOverviewVisible"`
	IsOfferingVisible     bool `json:"isOfferingVisible" bson:"isOfferingVisible"`
	IsExperienceVisible   bool `json:"isExperienceVisible" bson:"isExperienceVisible"`
	IsDeliveryVisible     bool `json:"isDeliveryVisible" bson:"isDeliveryVisible"`
	IsTrustVisible        bool `json:"isTrustVisible" bson:"isTrustVisible"`
	IsTestimonialsVisible bool `json:"isTestimonialsVisible" bson:"isTestimonialsVisible"`
	IsFaqsVisible         bool `json:"isFaqsVisible" bson:"isFaqsVisible"`
	IsCtaVisible          bool `json:"isCtaVisible" bson:"isCtaVisible"`

	InquiryFormFields []FormField `json:"inquiryFormFields" bson:"inquiryFormFields"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// NewCatalogItem returns an item carrying every default of kind, ready
// for a request body to be decoded on top of it.
func NewCatalogItem(kind CatalogKind) CatalogItem {
	return CatalogItem{
		CtaText:                  kind.DefaultCTA,
		ConsultationAvailability: true,
		IsOverviewVisible:        true,
		IsOfferingVisible:        true,
		IsExperienceVisible:      true,
		IsDeliveryVisible:        true,
		IsTrustVisible:           true,
		IsTestimonialsVisible:    true,
		IsFaqsVisible:            true,
		IsCtaVisible:             true,
	}
}

// DecodeCatalogItem decodes a create payload over the defaults of kind.
func DecodeCatalogItem(kind CatalogKind, body []byte) (CatalogItem, error) {
	item := NewCatalogItem(kind)
	if err := json.Unmarshal(body, &item); err != nil {
		return CatalogItem{}, err
	}
	item.Normalize()
	return item, nil
}

// Normalize trims the slug, replaces nil slices with empty ones and sorts
// the sections.
func (c *CatalogItem) Normalize() {
	c.Slug = strings.TrimSpace(c.Slug)
	for _, p := range []*[]string{
		&c.ProblemsSolved, &c.TargetAudience, &c.KeyFeatures, &c.CoverageAreas,
		&c.Technologies, &c.IndustriesServed, &c.Certifications, &c.Partnerships,
	} {
		if *p == nil {
			*p = []string{}
		}
	}
	if c.Testimonials == nil {
		c.Testimonials = []Testimonial{}
	}
	if c.FAQs == nil {
		c.FAQs = []FAQ{}
	}
	if c.DynamicSections == nil {
		c.DynamicSections = []Section{}
	}
	if c.InquiryFormFields == nil {
		c.InquiryFormFields = []FormField{}
	}
	SortSections(c.DynamicSections)
}

// Validate checks the listing fields and every nested section and form
// field.
func (c CatalogItem) Validate() error {
	required := []struct{ name, value string }{
		{"name", c.Name},
		{"shortDescription", c.ShortDescription},
		{"category", c.Category},
		{"startingPrice", c.StartingPrice},
		{"ctaText", c.CtaText},
		{"slug", c.Slug},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%s is required", r.name)
		}
	}
	for _, s := range c.DynamicSections {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	for _, f := range c.InquiryFormFields {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// CatalogListing is the projection served by the catalog index page.
type CatalogListing struct {
	Name             string `json:"name" bson:"name"`
	ShortDescription string `json:"shortDescription" bson:"shortDescription"`
	Category         string `json:"category" bson:"category"`
	StartingPrice    string `json:"startingPrice" bson:"startingPrice"`
	CtaText          string `json:"ctaText" bson:"ctaText"`
	Slug             string `json:"slug" bson:"slug"`
}
