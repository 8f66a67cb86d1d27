package student

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	ErrMissingFields = errors.New("name, email and studentId required")
	ErrStudentExists = errors.New("student with that email or studentId already exists")
	ErrNotFound      = errors.New("student not found")
)

// StudentStore is the slice of the repository the service needs.
type StudentStore interface {
	FindByEmailOrStudentID(ctx context.Context, email, studentID string) (*Student, error)
	Create(ctx context.Context, student *Student) error
	List(ctx context.Context) ([]*Student, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Student, error)
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*Student, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type Service struct {
	store  StudentStore
	logger *zap.Logger
}

func NewService(repo *StudentRepository, logger *zap.Logger) *Service {
	return NewServiceWithStore(repo, logger)
}

func NewServiceWithStore(store StudentStore, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger.Named("student")}
}

func (s *Service) Create(ctx context.Context, req CreateStudentRequest) (*Student, error) {
	if req.Name == "" || req.Email == "" || req.StudentID == "" {
		return nil, ErrMissingFields
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.store.FindByEmailOrStudentID(ctx, email, req.StudentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrStudentExists
	}

	student := &Student{
		ID:         primitive.NewObjectID(),
		Name:       req.Name,
		Email:      email,
		StudentID:  req.StudentID,
		Phone:      req.Phone,
		Major:      req.Major,
		Status:     req.Status,
		EnrolledAt: time.Now(),
	}
	if err := s.store.Create(ctx, student); err != nil {
		return nil, err
	}
	s.logger.Info("student created", zap.String("student_id", student.StudentID))
	return student, nil
}

func (s *Service) List(ctx context.Context) ([]*Student, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*Student, error) {
	student, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrNotFound
	}
	return student, nil
}

func (s *Service) Update(ctx context.Context, id primitive.ObjectID, req UpdateStudentRequest) (*Student, error) {
	updates := bson.M{"updated_at": time.Now()}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Major != nil {
		updates["major"] = *req.Major
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	student, err := s.store.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrNotFound
	}
	return student, nil
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
