package models

// Icon names the renderer knows for each section.
var (
	EducationIcons   = []string{"BookOpen", "Atom", "Code2", "Cpu", "GraduationCap"}
	CertificateIcons = []string{"Binary", "Database", "Cloud", "Puzzle", "Layers", "Coffee"}
	ProjectIcons     = []string{
		"Code2", "Laptop", "Globe", "Database", "Server", "Layers",
		"Cpu", "Rocket", "BookOpen", "Dumbbell", "Cloud", "Shield",
	}
)

var (
	HeroSection = Section{
		Name:       "hero",
		Collection: "hero",
		Key:        "main",
		Kind:       Singleton,
		Fields: []Field{
			{"name", StringField},
			{"role", StringField},
			{"description", StringField},
			{"githubUrl", StringField},
			{"linkedinUrl", StringField},
			{"email", StringField},
		},
		Record: func() any { return &Hero{} },
	}

	AboutSection = Section{
		Name:       "about",
		Collection: "about",
		Key:        "about",
		Kind:       Singleton,
		Fields: []Field{
			{"paragraph1", StringField},
			{"paragraph2", StringField},
			{"image", StringField},
			{"highlights", HighlightsField},
		},
		Record: func() any { return &About{} },
	}

	ContactSection = Section{
		Name:       "contact",
		Collection: "contact",
		Key:        "contact",
		Kind:       Singleton,
		Fields: []Field{
			{"email", StringField},
			{"phone", StringField},
			{"location", StringField},
		},
		Record: func() any { return &Contact{} },
	}

	EducationSection = Section{
		Name:       "education",
		Collection: "education",
		Kind:       Collection,
		Order:      ByCreation,
		Icons:      EducationIcons,
		Fields: []Field{
			{"degree", StringField},
			{"field", StringField},
			{"institute", StringField},
			{"duration", StringField},
			{"score", StringField},
			{"icon", StringField},
			{"description", StringField},
		},
		Record: func() any { return &Education{} },
	}

	TechStackSection = Section{
		Name:       "techstack",
		Collection: "techstack",
		Kind:       Collection,
		Order:      ByLastModified,
		Fields: []Field{
			{"name", StringField},
			{"logo", StringField},
		},
		Record: func() any { return &TechStack{} },
	}

	CertificatesSection = Section{
		Name:       "certificates",
		Collection: "certificates",
		Kind:       Collection,
		Order:      ByLastModified,
		Icons:      CertificateIcons,
		Fields: []Field{
			{"title", StringField},
			{"issuer", StringField},
			{"year", StringField},
			{"icon", StringField},
			{"description", StringField},
			{"link", StringField},
		},
		Record: func() any { return &Certificate{} },
	}

	ProjectsSection = Section{
		Name:       "projects",
		Collection: "projects",
		Kind:       Collection,
		Order:      ByLastModified,
		Icons:      ProjectIcons,
		Fields: []Field{
			{"title", StringField},
			{"description", StringField},
			{"icon", StringField},
			{"tech", StringListField},
			{"link", StringField},
			{"github", StringField},
		},
		Record: func() any { return &Project{} },
	}
)

// Sections lists every content section in page order.
func Sections() []Section {
	return []Section{
		HeroSection,
		AboutSection,
		EducationSection,
		TechStackSection,
		CertificatesSection,
		ProjectsSection,
		ContactSection,
	}
}
