package booking

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Draft is the in-progress booking form, persisted after every change so a
// reload never loses it. It is per session, not part of the durable record.
type Draft struct {
	Pickup      string `bson:"pickup" json:"pickup"`
	Dropoff     string `bson:"dropoff" json:"dropoff"`
	Date        string `bson:"date" json:"date"`
	Time        string `bson:"time" json:"time"`
	Passengers  int    `bson:"passengers" json:"passengers"`
	VehicleType string `bson:"vehicle_type" json:"vehicleType"`
}

// Booking is a confirmed ride.
type Booking struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RideNumber  string             `bson:"ride_number" json:"rideNumber"`
	IdentityID  string             `bson:"identity_id" json:"-"`
	Pickup      string             `bson:"pickup" json:"pickup"`
	Dropoff     string             `bson:"dropoff" json:"dropoff"`
	Date        string             `bson:"date" json:"date"`
	Time        string             `bson:"time" json:"time"`
	Passengers  int                `bson:"passengers" json:"passengers"`
	VehicleType string             `bson:"vehicle_type" json:"vehicleType"`
	Fare        float64            `bson:"fare" json:"fare"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// History is the ride-history view: newest-first rides plus the summary
// stats shown above them.
type History struct {
	Rides      []*Booking `json:"rides"`
	TotalRides int        `json:"totalRides"`
	TotalSpent float64    `json:"totalSpent"`
}
