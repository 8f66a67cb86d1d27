package student

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Student struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	StudentID  string             `bson:"student_id" json:"studentId"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Major      string             `bson:"major,omitempty" json:"major,omitempty"`
	Status     string             `bson:"status,omitempty" json:"status,omitempty"`
	EnrolledAt time.Time          `bson:"enrolled_at" json:"enrolledAt"`
	UpdatedAt  time.Time          `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

type CreateStudentRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	StudentID string `json:"studentId"`
	Phone     string `json:"phone"`
	Major     string `json:"major"`
	Status    string `json:"status"`
}

type UpdateStudentRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
	Major  *string `json:"major"`
	Status *string `json:"status"`
}
