package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Variant names a template shape a user can populate.
type Variant string

const (
	VariantArik Variant = "arik"
	VariantNova Variant = "nova"
)

// Variants lists every supported template variant.
var Variants = []Variant{VariantArik, VariantNova}

// ParseVariant resolves a variant name case-insensitively.
func ParseVariant(name string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Variants {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown template %q", name)
}

// Field is the name of the user field holding the variant's sub-document.
func (v Variant) Field() string {
	return string(v) + "Template"
}

// Arik: portfolio / freelancer template.

type ArikHero struct {
	HeroHeading    string `bson:"hero_heading" json:"hero_heading"`
	HeroSubheading string `bson:"hero_subheading" json:"hero_subheading"`
	HeroParagraph  string `bson:"hero_paragraph" json:"hero_paragraph"`
}

type ArikLogo struct {
	ImgURL string `bson:"img_url" json:"img_url"`
	ImgID  string `bson:"img_id" json:"img_id"`
}

type ArikService struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
}

type ArikWork struct {
	ID          primitive.ObjectID `bson:"id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Category    string             `bson:"category" json:"category"`
	ImgURL      string             `bson:"img_url" json:"img_url"`
	ImgID       string             `bson:"img_id" json:"img_id"`
	ProjectLink string             `bson:"project_link" json:"project_link"`
}

type ArikProcessStep struct {
	StepHeading    string   `bson:"step_heading" json:"step_heading"`
	StepSubheading string   `bson:"step_subheading" json:"step_subheading"`
	StepParagraph  string   `bson:"step_paragraph" json:"step_paragraph"`
	StepPoints     []string `bson:"step_points" json:"step_points"`
}

type ArikProcess struct {
	ProcessHeading   string            `bson:"process_heading" json:"process_heading"`
	ProcessParagraph string            `bson:"process_paragraph" json:"process_paragraph"`
	Steps            []ArikProcessStep `bson:"steps" json:"steps"`
}

type TestimonialClient struct {
	ClientImgURL  string `bson:"client_img_url" json:"client_img_url"`
	ClientImgID   string `bson:"client_img_id" json:"client_img_id"`
	ClientName    string `bson:"client_name" json:"client_name"`
	ClientCompany string `bson:"client_company" json:"client_company"`
}

type ArikTestimonial struct {
	TestimonialHeading   string            `bson:"testimonial_heading" json:"testimonial_heading"`
	TestimonialParagraph string            `bson:"testimonial_paragraph" json:"testimonial_paragraph"`
	TestimonialClient    TestimonialClient `bson:"testimonial_client" json:"testimonial_client"`
}

type ArikTestimonials struct {
	TestimonialsHeading   string            `bson:"testimonials_heading" json:"testimonials_heading"`
	TestimonialsParagraph string            `bson:"testimonials_paragraph" json:"testimonials_paragraph"`
	Testimonials          []ArikTestimonial `bson:"testimonials" json:"testimonials"`
}

type ArikFooter struct {
	FooterHeading   string `bson:"footer_heading" json:"footer_heading"`
	FooterParagraph string `bson:"footer_paragraph" json:"footer_paragraph"`
}

// ArikTemplate is the portfolio template sub-document.
type ArikTemplate struct {
	Hero         ArikHero         `bson:"hero" json:"hero"`
	Logos        []ArikLogo       `bson:"logos" json:"logos"`
	Services     []ArikService    `bson:"services" json:"services"`
	Work         []ArikWork       `bson:"work" json:"work"`
	Process      ArikProcess      `bson:"process" json:"process"`
	Testimonials ArikTestimonials `bson:"testimonials" json:"testimonials"`
	Footer       ArikFooter       `bson:"footer" json:"footer"`
	Analytics    Analytics        `bson:"analytics" json:"analytics"`
}

// Nova: creative agency template.

type NovaHero struct {
	Heading     string `bson:"heading" json:"heading"`
	Subheading  string `bson:"subheading" json:"subheading"`
	Description string `bson:"description" json:"description"`
	Image       string `bson:"image" json:"image"`
	ImageID     string `bson:"image_id" json:"image_id"`
}

type NovaSkill struct {
	ID         string `bson:"id" json:"id"`
	Name       string `bson:"name" json:"name"`
	Percentage int    `bson:"percentage" json:"percentage"`
}

type NovaProject struct {
	ID          string   `bson:"id" json:"id"`
	Title       string   `bson:"title" json:"title"`
	Description string   `bson:"description" json:"description"`
	Image       string   `bson:"image" json:"image"`
	ImageID     string   `bson:"image_id" json:"image_id"`
	Tags        []string `bson:"tags" json:"tags"`
	Link        string   `bson:"link" json:"link"`
}

type NovaTestimonial struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Position string `bson:"position" json:"position"`
	Company  string `bson:"company" json:"company"`
	Text     string `bson:"text" json:"text"`
	Avatar   string `bson:"avatar" json:"avatar"`
	AvatarID string `bson:"avatar_id" json:"avatar_id"`
}

type SocialLink struct {
	Name string `bson:"name" json:"name"`
	URL  string `bson:"url" json:"url"`
	Icon string `bson:"icon" json:"icon"`
}

type NovaContact struct {
	Heading     string       `bson:"heading" json:"heading"`
	Subheading  string       `bson:"subheading" json:"subheading"`
	Email       string       `bson:"email" json:"email"`
	Phone       string       `bson:"phone" json:"phone"`
	Address     string       `bson:"address" json:"address"`
	SocialLinks []SocialLink `bson:"social_links" json:"social_links"`
}

// NovaTemplate is the creative-agency template sub-document.
type NovaTemplate struct {
	Hero         NovaHero          `bson:"hero" json:"hero"`
	Skills       []NovaSkill       `bson:"skills" json:"skills"`
	Projects     []NovaProject     `bson:"projects" json:"projects"`
	Testimonials []NovaTestimonial `bson:"testimonials" json:"testimonials"`
	Contact      NovaContact       `bson:"contact" json:"contact"`
	Analytics    Analytics         `bson:"analytics" json:"analytics"`
}
