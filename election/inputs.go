package election

import "strings"

type field struct {
	name  string
	label string
	value string
}

// requireFields fails when any field is empty or only whitespace. Values
// are checked, never rewritten. A single missing field is named in the
// message; several are listed in the details.
func requireFields(fields ...field) error {
	missing := []string{}
	var label string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
			label = f.label
		}
	}
	switch len(missing) {
	case 0:
		return nil
	case 1:
		return validationError(label+" is required.", missing...)
	}
	return validationError("Missing required fields.", missing...)
}

type RegisterInput struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
	ParentName  string `json:"parentName"`
	Email       string `json:"email"`
	MobileNo    string `json:"mobileNo"`
	Password    string `json:"password"`
	CnicNumber  string `json:"cnicNumber"`
}

func (in *RegisterInput) Validate() error {
	return requireFields(
		field{"name", "Name", in.Name},
		field{"dateOfBirth", "Date of birth", in.DateOfBirth},
		field{"parentName", "Parent name", in.ParentName},
		field{"email", "Email", in.Email},
		field{"mobileNo", "Mobile number", in.MobileNo},
		field{"password", "Password", in.Password},
		field{"cnicNumber", "CNIC number", in.CnicNumber},
	)
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in *LoginInput) Validate() error {
	return requireFields(
		field{"email", "Email", in.Email},
		field{"password", "Password", in.Password},
	)
}

type LogoutInput struct {
	CnicNumber string `json:"cnicNumber"`
}

func (in *LogoutInput) Validate() error {
	return requireFields(field{"cnicNumber", "CNIC number", in.CnicNumber})
}

type AddCandidateInput struct {
	Name string `json:"name"`
}

func (in *AddCandidateInput) Validate() error {
	return requireFields(field{"name", "Candidate name", in.Name})
}

type VoteInput struct {
	CandidateName string `json:"candidateName"`
}

func (in *VoteInput) Validate() error {
	return requireFields(field{"candidateName", "Candidate name", in.CandidateName})
}
