package project

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project is a business record. Opportunities and projects share the
// collection and are told apart by IsOpportunity; the business dashboards
// aggregate over status, division and the money fields below.
type Project struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name              string             `json:"name" bson:"name"`
	ClientName        string             `json:"client_name" bson:"client_name"`
	Status            string             `json:"status" bson:"status"`
	DivisionID        string             `json:"division_id" bson:"division_id"`
	DivisionName      string             `json:"division_name" bson:"division_name"`
	IsOpportunity     bool               `json:"is_opportunity" bson:"is_opportunity"`
	FinalTotalWithGST float64            `json:"final_total_with_gst" bson:"final_total_with_gst"`
	Profit            float64            `json:"profit" bson:"profit"`
	StartDate         time.Time          `json:"start_date" bson:"start_date"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}
