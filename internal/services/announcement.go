package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/hsmgmt/schoolsys-gobackend/internal/models"
)

// AnnouncementService implements announcement CRUD against the announcements
// collection. Each call is a single storage operation (plus the refetch on
// update); consistency is whatever the document store provides per operation.
type AnnouncementService struct {
	collection *mongo.Collection
	log        *zap.Logger
}

func NewAnnouncementService(db *mongo.Database, log *zap.Logger) *AnnouncementService {
	return &AnnouncementService{collection: db.Collection("announcements"), log: log}
}

// CreateAnnouncementInput carries the validated-on-entry fields for a new
// announcement. An empty StartDate means the field was not supplied.
type CreateAnnouncementInput struct {
	Message        string
	ExpirationDate string
	StartDate      string
	CreatedBy      string
}

// UpdateAnnouncementInput carries optional updates; nil means the field was
// not supplied. An empty StartDate string is the removal sentinel.
type UpdateAnnouncementInput struct {
	Message        *string
	ExpirationDate *string
	StartDate      *string
}

// List returns announcements sorted by created_at descending. With
// activeOnly set, only announcements whose start date (if any) has passed
// and whose expiration date has not are returned.
func (s *AnnouncementService) List(ctx context.Context, activeOnly bool) ([]models.Announcement, error) {
	filter := bson.M{}
	if activeOnly {
		filter = activeFilter(time.Now())
	}

	cur, err := s.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		s.log.Error("failed to query announcements", zap.Error(err))
		return nil, err
	}
	defer cur.Close(ctx)

	var announcements []models.Announcement
	if err := cur.All(ctx, &announcements); err != nil {
		s.log.Error("failed to decode announcements", zap.Error(err))
		return nil, err
	}
	if announcements == nil {
		announcements = []models.Announcement{}
	}

	return announcements, nil
}

// Get returns a single announcement by its hex ID.
func (s *AnnouncementService) Get(ctx context.Context, id string) (*models.Announcement, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var announcement models.Announcement
	if err := s.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&announcement); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		s.log.Error("failed to fetch announcement", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return &announcement, nil
}

// Create validates the date strings, persists a new announcement and returns
// it with the assigned ID. Date values are stored as supplied, not
// normalized.
func (s *AnnouncementService) Create(ctx context.Context, in CreateAnnouncementInput) (*models.Announcement, error) {
	expiration, err := parseISODate(in.ExpirationDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if in.StartDate != "" {
		start, err := parseISODate(in.StartDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		if !start.Before(expiration) {
			return nil, ErrInvalidDateOrder
		}
	}

	announcement := &models.Announcement{
		ID:             primitive.NewObjectID(),
		Message:        in.Message,
		ExpirationDate: in.ExpirationDate,
		StartDate:      in.StartDate,
		CreatedBy:      in.CreatedBy,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}

	result, err := s.collection.InsertOne(ctx, announcement)
	if err != nil {
		s.log.Error("failed to insert announcement", zap.Error(err))
		return nil, err
	}
	announcement.ID = result.InsertedID.(primitive.ObjectID)

	s.log.Info("announcement created",
		zap.String("id", announcement.ID.Hex()),
		zap.String("created_by", announcement.CreatedBy))
	return announcement, nil
}

// Update applies the supplied fields to an existing announcement and returns
// the post-update document. Each supplied field is validated independently;
// the start/expiration ordering is then re-checked on the effective pair.
// The removal sentinel (empty start_date) is applied as an immediate unset,
// and the ordering re-check reads the snapshot fetched before that unset.
func (s *AnnouncementService) Update(ctx context.Context, id string, in UpdateAnnouncementInput) (*models.Announcement, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var existing models.Announcement
	if err := s.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&existing); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		s.log.Error("failed to fetch announcement", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	updateFields := bson.M{}

	if in.Message != nil {
		updateFields["message"] = *in.Message
	}

	if in.ExpirationDate != nil {
		if _, err := parseISODate(*in.ExpirationDate); err != nil {
			return nil, ErrInvalidDate
		}
		updateFields["expiration_date"] = *in.ExpirationDate
	}

	if in.StartDate != nil {
		if *in.StartDate == "" {
			if _, err := s.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$unset": bson.M{"start_date": ""}}); err != nil {
				s.log.Error("failed to unset start_date", zap.String("id", id), zap.Error(err))
				return nil, err
			}
		} else {
			if _, err := parseISODate(*in.StartDate); err != nil {
				return nil, ErrInvalidDate
			}
			updateFields["start_date"] = *in.StartDate
		}
	}

	if err := validateEffectiveWindow(existing, updateFields); err != nil {
		return nil, err
	}

	if len(updateFields) > 0 {
		if _, err := s.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": updateFields}); err != nil {
			s.log.Error("failed to update announcement", zap.String("id", id), zap.Error(err))
			return nil, err
		}
	}

	var updated models.Announcement
	if err := s.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&updated); err != nil {
		s.log.Error("failed to fetch updated announcement", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return &updated, nil
}

// Delete removes an announcement. Deleting an ID that matches nothing is
// ErrNotFound, so a repeated delete fails cleanly instead of succeeding.
func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		s.log.Error("failed to delete announcement", zap.String("id", id), zap.Error(err))
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	s.log.Info("announcement deleted", zap.String("id", id))
	return nil
}
