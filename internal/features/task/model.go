package task

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Task struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Subject    string             `json:"subject" bson:"subject"`
	Status     string             `json:"status" bson:"status"` // open, in_progress, done
	AssigneeID string             `json:"assignee_id,omitempty" bson:"assignee_id,omitempty"`
	ProjectID  string             `json:"project_id,omitempty" bson:"project_id,omitempty"`
	DueDate    *time.Time         `json:"due_date,omitempty" bson:"due_date,omitempty"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}
