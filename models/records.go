package models

import "encoding/json"

// Hero is the landing section record.
type Hero struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Description string `json:"description"`
	GithubURL   string `json:"githubUrl"`
	LinkedinURL string `json:"linkedinUrl"`
	Email       string `json:"email"`
}

type Highlight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// About carries its portrait inline as a data URI.
type About struct {
	Paragraph1 string      `json:"paragraph1"`
	Paragraph2 string      `json:"paragraph2"`
	Image      string      `json:"image"`
	Highlights []Highlight `json:"highlights"`
}

type Contact struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

type Education struct {
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institute   string `json:"institute"`
	Duration    string `json:"duration"`
	Score       string `json:"score"`
	Icon        string `json:"icon" validate:"required"`
	Description string `json:"description"`
}

type TechStack struct {
	Name string `json:"name" validate:"required"`
	Logo string `json:"logo" validate:"required"`
}

type Certificate struct {
	Title       string `json:"title"`
	Issuer      string `json:"issuer"`
	Year        string `json:"year"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Tech        []string `json:"tech"`
	Link        string   `json:"link"`
	Github      string   `json:"github"`
}

// ContactMessage is a visitor's contact-form submission. It is mailed, never stored.
type ContactMessage struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Validate checks the required contact-form fields.
func (m ContactMessage) Validate() error {
	return validateStruct(m)
}

func decodeInto(d Document, target any) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}
