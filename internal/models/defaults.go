package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Collection sizes a freshly created Arik template starts with. ArikLogoCount
// is also a hard rule: a logos replacement must carry exactly this many entries.
const (
	ArikLogoCount        = 6
	arikServiceCount     = 3
	arikWorkCount        = 4
	arikProcessStepCount = 5
	arikTestimonialCount = 6
)

// NewArikTemplate returns an Arik template filled with starter content.
func NewArikTemplate() *ArikTemplate {
	t := &ArikTemplate{
		Logos:    make([]ArikLogo, ArikLogoCount),
		Services: make([]ArikService, arikServiceCount),
		Work:     make([]ArikWork, arikWorkCount),
		Process: ArikProcess{
			Steps: make([]ArikProcessStep, arikProcessStepCount),
		},
		Testimonials: ArikTestimonials{
			TestimonialsHeading:   "What my clients say",
			TestimonialsParagraph: "See what my clients have to say about working with me and the results I helped them achieve.",
			Testimonials:          make([]ArikTestimonial, arikTestimonialCount),
		},
		Footer: ArikFooter{
			FooterHeading:   "Let's make your Website Shine",
			FooterParagraph: "Premium web design, webflow, and SEO services to help your business stand out.",
		},
		Analytics: NewAnalytics(),
	}
	for i := range t.Work {
		t.Work[i] = ArikWork{ID: primitive.NewObjectID(), ProjectLink: "https://www.google.com"}
	}
	for i := range t.Process.Steps {
		t.Process.Steps[i].StepPoints = []string{"", "", ""}
	}
	return t
}

// NewNovaTemplate returns a Nova template filled with starter content.
func NewNovaTemplate() *NovaTemplate {
	return &NovaTemplate{
		Hero: NovaHero{
			Heading:     "Hi, I'm Nova Creative",
			Subheading:  "Designer & Developer crafting beautiful digital experiences",
			Description: "I specialize in creating stunning, functional websites and applications that help businesses and individuals stand out in the digital landscape. With a focus on clean design and seamless user experience, I bring ideas to life.",
			Image:       "https://images.unsplash.com/photo-1568602471122-7832951cc4c5?auto=format&fit=crop&w=1050&q=80",
		},
		Skills: []NovaSkill{
			{ID: "1", Name: "React", Percentage: 90},
			{ID: "2", Name: "TypeScript", Percentage: 85},
			{ID: "3", Name: "Node.js", Percentage: 80},
			{ID: "4", Name: "Next.js", Percentage: 85},
			{ID: "5", Name: "GraphQL", Percentage: 75},
			{ID: "6", Name: "UI/UX Design", Percentage: 70},
			{ID: "7", Name: "MongoDB", Percentage: 75},
			{ID: "8", Name: "TailwindCSS", Percentage: 90},
		},
		Projects: []NovaProject{
			{
				ID:          "1",
				Title:       "Modern E-commerce Platform",
				Description: "A fully responsive e-commerce platform built with Next.js, featuring product filtering, cart functionality, and secure payment processing.",
				Image:       "https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?auto=format&fit=crop&w=1470&q=80",
				Tags:        []string{"Next.js", "React", "Tailwind CSS", "Stripe"},
				Link:        "https://example.com/project1",
			},
			{
				ID:          "2",
				Title:       "Portfolio Dashboard",
				Description: "An interactive dashboard for tracking portfolio performance with real-time data visualization and analytics.",
				Image:       "https://images.unsplash.com/photo-1551288049-bebda4e38f71?auto=format&fit=crop&w=1470&q=80",
				Tags:        []string{"React", "D3.js", "TypeScript", "Firebase"},
				Link:        "https://example.com/project2",
			},
			{
				ID:          "3",
				Title:       "Mobile Fitness App",
				Description: "A cross-platform fitness application with workout tracking, nutrition planning, and progress visualization.",
				Image:       "https://images.unsplash.com/photo-1540497077202-7c8a3999166f?auto=format&fit=crop&w=1470&q=80",
				Tags:        []string{"React Native", "Redux", "Node.js", "MongoDB"},
				Link:        "https://example.com/project3",
			},
			{
				ID:          "4",
				Title:       "AI Content Generator",
				Description: "An AI-powered content generation tool that creates high-quality articles, social media posts, and marketing copy.",
				Image:       "https://images.unsplash.com/photo-1677442135133-4da243c2f9e5?auto=format&fit=crop&w=1632&q=80",
				Tags:        []string{"Python", "TensorFlow", "GPT-3", "FastAPI"},
				Link:        "https://example.com/project4",
			},
		},
		Testimonials: []NovaTestimonial{
			{
				ID:       "1",
				Name:     "Sarah Johnson",
				Position: "CEO",
				Company:  "TechVision",
				Text:     "Working with Nova was an absolute pleasure. They delivered our project on time and exceeded our expectations with their attention to detail and creative solutions.",
				Avatar:   "https://randomuser.me/api/portraits/women/1.jpg",
			},
			{
				ID:       "2",
				Name:     "Michael Chen",
				Position: "Marketing Director",
				Company:  "GrowthLabs",
				Text:     "Nova transformed our digital presence with a stunning website that perfectly captures our brand identity. Their technical expertise and design skills are top-notch.",
				Avatar:   "https://randomuser.me/api/portraits/men/2.jpg",
			},
			{
				ID:       "3",
				Name:     "Emily Rodriguez",
				Position: "Founder",
				Company:  "Artisan Studio",
				Text:     "I was impressed by Nova's ability to understand our vision and translate it into a beautiful, functional website. They were responsive, professional, and a joy to work with.",
				Avatar:   "https://randomuser.me/api/portraits/women/3.jpg",
			},
		},
		Contact: NovaContact{
			Heading:    "Get in Touch",
			Subheading: "Have a project in mind or want to discuss a potential collaboration? I'd love to hear from you.",
			Email:      "hello@novacreative.com",
			Phone:      "+1 (555) 123-4567",
			Address:    "123 Creative St, Design City, CA 94103",
			SocialLinks: []SocialLink{
				{Name: "GitHub", URL: "https://github.com/novacreative", Icon: "github"},
				{Name: "LinkedIn", URL: "https://linkedin.com/in/novacreative", Icon: "linkedin"},
				{Name: "Twitter", URL: "https://twitter.com/novacreative", Icon: "twitter"},
				{Name: "Instagram", URL: "https://instagram.com/novacreative", Icon: "instagram"},
			},
		},
		Analytics: NewAnalytics(),
	}
}
