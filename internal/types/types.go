// Package types holds the data structures shared by the handlers, the
// validator and every storage backend. Keeping them in one place prevents
// import cycles.
package types

// Student is the five-field payload accepted by create and update.
//
// It deliberately has no ID field: the identifier is assigned by the
// document store and is never read from a request body. Any "id" key a
// client sends is simply dropped by the JSON decoder.
//
// The tags map each field to the same name in every representation:
//
//  1. json:"..."      — the HTTP wire format
//  2. bson:"..."      — MongoDB documents
//  3. firestore:"..." — Firestore documents
//  4. validate:"..."  — rules checked by internal/validation
//
// Field order matters: the validator reports the first failing field in
// declaration order, so name → dob → gender → email → phone.
type Student struct {
	Name   string `json:"student_name"   bson:"student_name"   firestore:"student_name"   validate:"required"`
	DOB    string `json:"student_dob"    bson:"student_dob"    firestore:"student_dob"    validate:"required,pastdate"`
	Gender string `json:"student_gender" bson:"student_gender" firestore:"student_gender" validate:"required,oneof=Male Female Other"`
	Email  string `json:"student_email"  bson:"student_email"  firestore:"student_email"  validate:"required,looseemail"`
	Phone  string `json:"student_phone"  bson:"student_phone"  firestore:"student_phone"  validate:"required,phone10"`
}

// StudentRecord is a stored Student tagged with its store-assigned ID.
//
// The embedded Student's fields are promoted in JSON, so a record encodes
// as a flat object with "id" first:
//
//	{ "id": "abc", "student_name": "Ann", ... }
type StudentRecord struct {
	ID string `json:"id"`
	Student
}
