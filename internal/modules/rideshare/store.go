// README: Rate card store backed by PostgreSQL.
package rideshare

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// GetRateCard loads the formula constants for a product. Missing rows surface
// as errors; callers keep their configured defaults in that case.
func (s *Store) GetRateCard(ctx context.Context, product string) (RateCard, error) {
	const q = `SELECT base_fare, per_mile, booking_fee FROM rideshare_rates WHERE product = $1`
	var rc RateCard
	if err := s.db.QueryRow(ctx, q, product).Scan(&rc.BaseFare, &rc.PerMile, &rc.BookingFee); err != nil {
		return RateCard{}, err
	}
	return rc, nil
}
