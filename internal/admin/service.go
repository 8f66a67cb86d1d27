package admin

import (
	"context"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"MastoRide/internal/auth"
	"MastoRide/internal/booking"
	"MastoRide/internal/student"
)

// Stats is the aggregate KPI block on the admin dashboard.
type Stats struct {
	TotalUsers      int64   `json:"totalUsers"`
	TotalStudents   int64   `json:"totalStudents"`
	TotalBookings   int64   `json:"totalBookings"`
	PendingBookings int64   `json:"pendingBookings"`
	FareMean        float64 `json:"fareMean"`
	FareMedian      float64 `json:"fareMedian"`
}

type Service struct {
	users    *auth.UserRepository
	students *student.StudentRepository
	bookings *booking.BookingRepository
	logger   *zap.Logger
}

func NewService(users *auth.UserRepository, students *student.StudentRepository, bookings *booking.BookingRepository, logger *zap.Logger) *Service {
	return &Service{users: users, students: students, bookings: bookings, logger: logger.Named("admin")}
}

func (s *Service) ListUsers(ctx context.Context) ([]*auth.Identity, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	// only public fields leave the server; hashes stay behind
	identities := make([]*auth.Identity, 0, len(users))
	for _, u := range users {
		identities = append(identities, u.PublicIdentity())
	}
	return identities, nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	totalUsers, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	totalStudents, err := s.students.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalBookings, err := s.bookings.Count(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.bookings.CountByStatus(ctx, booking.StatusPending)
	if err != nil {
		return nil, err
	}

	out := &Stats{
		TotalUsers:      totalUsers,
		TotalStudents:   totalStudents,
		TotalBookings:   totalBookings,
		PendingBookings: pending,
	}

	fares, err := s.bookings.Fares(ctx)
	if err != nil {
		return nil, err
	}
	if len(fares) > 0 {
		if mean, err := stats.Mean(fares); err == nil {
			out.FareMean, _ = stats.Round(mean, 2)
		}
		if median, err := stats.Median(fares); err == nil {
			out.FareMedian, _ = stats.Round(median, 2)
		}
	}
	return out, nil
}

func (s *Service) RecentBookings(ctx context.Context) ([]*booking.Booking, error) {
	return s.bookings.ListRecent(ctx, 100)
}
