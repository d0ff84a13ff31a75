package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hsmgmt/schoolsys-gobackend/internal/models"
)

// TeacherService reads the teachers collection. Teachers are keyed by
// username as the document _id; a record existing is what authorizes
// announcement writes. No password or token verification happens here.
type TeacherService struct {
	collection *mongo.Collection
}

func NewTeacherService(db *mongo.Database) *TeacherService {
	return &TeacherService{collection: db.Collection("teachers")}
}

// Exists reports whether a teacher record exists for the given username.
func (s *TeacherService) Exists(ctx context.Context, username string) (bool, error) {
	var teacher models.Teacher
	err := s.collection.FindOne(ctx, bson.M{"_id": username}).Decode(&teacher)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
