// Package schema defines the record shapes stored by the site API.
//
// Each type maps to one collection named after the lowercased type name
// (Project -> "project"). Fields tagged schema:"required" must be present and
// non-null in the payload; validate tags carry value constraints; absent optional
// fields keep the defaults set by the registry constructors.
package schema

// User is a registered site user.
// Collection: "user"
type User struct {
	Name     string `json:"name" bson:"name" schema:"required"`
	Email    string `json:"email" bson:"email" schema:"required"`
	Address  string `json:"address" bson:"address" schema:"required"`
	Age      *int   `json:"age" bson:"age" validate:"omitempty,gte=0,lte=120"`
	IsActive bool   `json:"is_active" bson:"is_active"` // default true
}

// Product is a catalogue entry.
// Collection: "product"
type Product struct {
	Title       string  `json:"title" bson:"title" schema:"required"`
	Description *string `json:"description" bson:"description"`
	Price       float64 `json:"price" bson:"price" schema:"required" validate:"gte=0"`
	Category    string  `json:"category" bson:"category" schema:"required"`
	InStock     bool    `json:"in_stock" bson:"in_stock"` // default true
}

// ContactMessage is a message sent through the website contact form.
// Collection: "contactmessage"
type ContactMessage struct {
	Name    string  `json:"name" bson:"name" schema:"required"`
	Email   string  `json:"email" bson:"email" schema:"required" validate:"email"`
	Subject *string `json:"subject" bson:"subject"`
	Message string  `json:"message" bson:"message" schema:"required" validate:"min=1,max=5000"`
}

// Project is a portfolio project shown on the site.
// Collection: "project"
type Project struct {
	Title       string   `json:"title" bson:"title" schema:"required"`
	Description string   `json:"description" bson:"description" schema:"required"`
	Tags        []string `json:"tags" bson:"tags"` // default []
	URL         *string  `json:"url" bson:"url"`
	Repo        *string  `json:"repo" bson:"repo"`
	Image       *string  `json:"image" bson:"image"`
}

func (*User) SchemaName() string           { return "User" }
func (*Product) SchemaName() string        { return "Product" }
func (*ContactMessage) SchemaName() string { return "ContactMessage" }
func (*Project) SchemaName() string        { return "Project" }

func (p *Project) setDefaults() {
	if p.Tags == nil {
		p.Tags = []string{}
	}
}
