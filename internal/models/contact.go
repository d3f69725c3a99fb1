package models

// ContactFormData is a contact form submission
type ContactFormData struct {
	Name    string `json:"name" form:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" form:"email" validate:"required,emailshape"`
	Subject string `json:"subject,omitempty" form:"subject" validate:"max=200"`
	Message string `json:"message" form:"message" validate:"required,min=10,max=5000"`
}
