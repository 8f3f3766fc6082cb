package model

import (
	"conference/shared/model"
)

const (
	TableName  = "lawyers"
	EntityName = "lawyer"

	FieldID     = "id"
	FieldName   = "name"
	FieldEmail  = "email"
	FieldPhone  = "phone"
	FieldBaslID = "basl_id"
	FieldNIC    = "nic"
)

// Unique constraint names, matched against postgres unique violations.
const (
	ConstraintEmail  = "lawyers_email_key"
	ConstraintBaslID = "lawyers_basl_id_key"
	ConstraintNIC    = "lawyers_nic_key"
)

// Lawyer is the primary registrant of a booking.
type Lawyer struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Email  string `db:"email"`
	Phone  string `db:"phone"`
	BaslID string `db:"basl_id"`
	NIC    string `db:"nic"`
	model.Metadata
}
