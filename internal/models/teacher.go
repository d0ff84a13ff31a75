package models

// Teacher is a record in the teachers collection, keyed by username as the
// document _id. This service only ever reads it: a teacher record existing
// is what authorizes announcement writes.
type Teacher struct {
	Username    string `bson:"_id" json:"username"`
	DisplayName string `bson:"display_name,omitempty" json:"display_name,omitempty"`
}
