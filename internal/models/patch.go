package models

// Sparse patches mirror the template shapes with every field optional. A nil
// pointer or nil slice means "leave untouched"; anything else, including an
// empty string or empty slice, overwrites the field at its path. Collections
// are replaced wholesale. Analytics is deliberately absent: only visit
// recording mutates it.

type ArikHeroPatch struct {
	HeroHeading    *string `bson:"hero_heading,omitempty" json:"hero_heading,omitempty"`
	HeroSubheading *string `bson:"hero_subheading,omitempty" json:"hero_subheading,omitempty"`
	HeroParagraph  *string `bson:"hero_paragraph,omitempty" json:"hero_paragraph,omitempty"`
}

type ArikProcessPatch struct {
	ProcessHeading   *string           `bson:"process_heading,omitempty" json:"process_heading,omitempty"`
	ProcessParagraph *string           `bson:"process_paragraph,omitempty" json:"process_paragraph,omitempty"`
	Steps            []ArikProcessStep `bson:"steps,omitempty" json:"steps,omitempty"`
}

type ArikTestimonialsPatch struct {
	TestimonialsHeading   *string           `bson:"testimonials_heading,omitempty" json:"testimonials_heading,omitempty"`
	TestimonialsParagraph *string           `bson:"testimonials_paragraph,omitempty" json:"testimonials_paragraph,omitempty"`
	Testimonials          []ArikTestimonial `bson:"testimonials,omitempty" json:"testimonials,omitempty"`
}

type ArikFooterPatch struct {
	FooterHeading   *string `bson:"footer_heading,omitempty" json:"footer_heading,omitempty"`
	FooterParagraph *string `bson:"footer_paragraph,omitempty" json:"footer_paragraph,omitempty"`
}

// ArikTemplatePatch is a sparse update of an ArikTemplate.
type ArikTemplatePatch struct {
	Hero         *ArikHeroPatch         `bson:"hero,omitempty" json:"hero,omitempty"`
	Logos        []ArikLogo             `bson:"logos,omitempty" json:"logos,omitempty"`
	Services     []ArikService          `bson:"services,omitempty" json:"services,omitempty"`
	Work         []ArikWork             `bson:"work,omitempty" json:"work,omitempty"`
	Process      *ArikProcessPatch      `bson:"process,omitempty" json:"process,omitempty"`
	Testimonials *ArikTestimonialsPatch `bson:"testimonials,omitempty" json:"testimonials,omitempty"`
	Footer       *ArikFooterPatch       `bson:"footer,omitempty" json:"footer,omitempty"`
}

type NovaHeroPatch struct {
	Heading     *string `bson:"heading,omitempty" json:"heading,omitempty"`
	Subheading  *string `bson:"subheading,omitempty" json:"subheading,omitempty"`
	Description *string `bson:"description,omitempty" json:"description,omitempty"`
	Image       *string `bson:"image,omitempty" json:"image,omitempty"`
	ImageID     *string `bson:"image_id,omitempty" json:"image_id,omitempty"`
}

type NovaContactPatch struct {
	Heading     *string      `bson:"heading,omitempty" json:"heading,omitempty"`
	Subheading  *string      `bson:"subheading,omitempty" json:"subheading,omitempty"`
	Email       *string      `bson:"email,omitempty" json:"email,omitempty"`
	Phone       *string      `bson:"phone,omitempty" json:"phone,omitempty"`
	Address     *string      `bson:"address,omitempty" json:"address,omitempty"`
	SocialLinks []SocialLink `bson:"social_links,omitempty" json:"social_links,omitempty"`
}

// NovaTemplatePatch is a sparse update of a NovaTemplate.
type NovaTemplatePatch struct {
	Hero         *NovaHeroPatch    `bson:"hero,omitempty" json:"hero,omitempty"`
	Skills       []NovaSkill       `bson:"skills,omitempty" json:"skills,omitempty"`
	Projects     []NovaProject     `bson:"projects,omitempty" json:"projects,omitempty"`
	Testimonials []NovaTestimonial `bson:"testimonials,omitempty" json:"testimonials,omitempty"`
	Contact      *NovaContactPatch `bson:"contact,omitempty" json:"contact,omitempty"`
}

type PreferencesPatch struct {
	Colors     []string `bson:"colors,omitempty" json:"colors,omitempty"`
	Profession *string  `bson:"profession,omitempty" json:"profession,omitempty"`
}

// UserPatch is a sparse update of the account fields a user may change.
// Password is never written as-is; it is hashed into passwordHash.
type UserPatch struct {
	Username     *string           `bson:"username,omitempty" json:"username,omitempty"`
	Email        *string           `bson:"email,omitempty" json:"email,omitempty"`
	Subscription *Subscription     `bson:"subscription,omitempty" json:"subscription,omitempty"`
	Preferences  *PreferencesPatch `bson:"preferences,omitempty" json:"preferences,omitempty"`
	Password     *string           `bson:"-" json:"password,omitempty"`
}
