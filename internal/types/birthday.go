package types

// Birthday is one entry of the upcoming birthdays list
type Birthday struct {
	EID        int64  `json:"eid"`
	FullName   string `json:"full_name"`
	Department string `json:"department"`
	BirthDate  Date   `json:"birth_date"`
}

// BirthdayListResponse wraps the upcoming birthdays list
type BirthdayListResponse struct {
	Birthdays []Birthday `json:"birthdays"`
}
