package entity

// HomeProfile is the cached identity card shown on the landing screen.
type HomeProfile struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	RollNo    string `json:"roll_no,omitempty"`
	Email     string `json:"email"`
	ClassName string `json:"class_name,omitempty"`
}

// RosterRow is one validated line of an imported student roster.
type RosterRow struct {
	RollNo    string `validate:"required,rollno"`
	Name      string `validate:"required,max=100"`
	Email     string `validate:"required,email"`
	ClassName string `validate:"required,max=50"`
}
