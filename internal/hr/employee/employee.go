// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

// Package employee implements the personnel records domain.
//
// An employee record may be linked to a login account (UserID) when it was
// provisioned through registration, or stand alone when HR created it for
// someone who never logs in.
package employee

import "time"

// Employee represents a single personnel record.
type Employee struct {
	ID                      int64      `json:"id"`
	FirstName               string     `json:"first_name"`
	LastName                string     `json:"last_name"`
	Email                   string     `json:"email"`
	PhoneNumber             string     `json:"phone_number"`
	Department              string     `json:"department"`
	Position                string     `json:"position"`
	DateOfBirth             *time.Time `json:"date_of_birth"`
	NationalInsuranceNumber string     `json:"national_insurance_number"`
	UserID                  *int64     `json:"user_id"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// Filter holds the parameters for a paginated employee search.
type Filter struct {
	Query      string // Matches against first name, last name, and email
	Department string
}

// Global field names for validation
const (
	FieldFirstName               = "first_name"
	FieldLastName                = "last_name"
	FieldEmail                   = "email"
	FieldPhoneNumber             = "phone_number"
	FieldDepartment              = "department"
	FieldPosition                = "position"
	FieldDateOfBirth             = "date_of_birth"
	FieldNationalInsuranceNumber = "national_insurance_number"
)
