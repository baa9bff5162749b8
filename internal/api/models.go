package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Resource formats the backend knows about.
const (
	FormatNote    = "Note"
	FormatPDF     = "PDF"
	FormatVideo   = "Video"
	FormatImage   = "Image"
	FormatWebsite = "Website"
)

// Resource is a saved note or learning resource.
// The detail endpoint fills the format-specific link fields.
type Resource struct {
	ResourceID int64  `json:"ResourceID"`
	Title      string `json:"Title"`
	Author     string `json:"Author"`
	Rating     Rating `json:"Rating"`
	Date       string `json:"Date"`
	Format     string `json:"Format"`
	URL        string `json:"Url,omitempty"`
	Body       string `json:"Body,omitempty"`
	Keywords   string `json:"Keywords,omitempty"`

	NoteBody    string `json:"NoteBody,omitempty"`
	PdfLink     string `json:"PdfLink,omitempty"`
	ImageLink   string `json:"ImageLink,omitempty"`
	WebsiteLink string `json:"WebsiteLink,omitempty"`
	VideoLink   string `json:"VideoLink,omitempty"`
	Duration    string `json:"Duration,omitempty"`
}

// Link returns the resource's link, whichever field the backend put it in.
func (r Resource) Link() string {
	for _, l := range []string{r.URL, r.PdfLink, r.VideoLink, r.ImageLink, r.WebsiteLink} {
		if l != "" {
			return l
		}
	}
	return ""
}

// Text returns the free-text body of a note.
func (r Resource) Text() string {
	if r.Body != "" {
		return r.Body
	}
	return r.NoteBody
}

// NewResource is the body of a create request.
type NewResource struct {
	DateFor  string `json:"DateFor,omitempty"`
	Author   string `json:"Author"`
	Topic    string `json:"Topic"`
	Keywords string `json:"Keywords,omitempty"`
	Format   string `json:"Format"`
	Body     string `json:"Body,omitempty"`
	Link     string `json:"Link,omitempty"`
}

// Created is the backend's answer to a create request.
type Created struct {
	ResourceID int64 `json:"ResourceID,omitempty"`
	UserID     int64 `json:"user_id,omitempty"`
}

// User is an account; professors see rosters, students save notes.
type User struct {
	UserID      int64  `json:"UserID"`
	Name        string `json:"Name"`
	Courses     string `json:"Courses,omitempty"`
	IsProfessor Bool   `json:"IsProfessor"`
}

// NewUser is the body of an account creation request.
type NewUser struct {
	Name        string `json:"Name"`
	Courses     string `json:"Courses,omitempty"`
	IsProfessor bool   `json:"IsProfessor"`
}

// Course is a course offering.
type Course struct {
	CourseID      int64  `json:"CourseID"`
	Name          string `json:"Name"`
	Subject       string `json:"Subject,omitempty"`
	CatalogNumber string `json:"CatalogNumber,omitempty"`
	Year          int    `json:"Year,omitempty"`
}

// Rating decodes both JSON numbers and numeric strings ("4").
type Rating float64

// UnmarshalJSON implements json.Unmarshaler.
func (r *Rating) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = 0
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		*r = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*r = Rating(f)
	return nil
}

// Bool decodes JSON booleans as well as the strings and numbers
// ("True", "false", 1, 0) some backend variants send.
type Bool bool

// UnmarshalJSON implements json.Unmarshaler.
func (v *Bool) UnmarshalJSON(b []byte) error {
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case bool:
		*v = Bool(x)
	case float64:
		*v = x != 0
	case string:
		pb, err := strconv.ParseBool(strings.ToLower(x))
		if err != nil {
			return err
		}
		*v = Bool(pb)
	default:
		*v = false
	}
	return nil
}
