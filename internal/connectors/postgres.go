package connectors

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// DivisionStatsRow mirrors one row of the external divisions reporting table.
type DivisionStatsRow struct {
	DivisionID         string
	DivisionName       string
	OpportunitiesCount int64
	ProjectsCount      int64
	OpportunitiesValue float64
	FinalTotalWithGST  float64
	Profit             float64
}

// DivisionStatsConnector reads per-division aggregates from an external
// Postgres reporting database. It is optional; when no DSN is configured the
// business service computes the same numbers from Mongo.
type DivisionStatsConnector struct {
	db *sql.DB
}

func NewDivisionStatsConnector(dsn string) (*DivisionStatsConnector, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open divisions database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return &DivisionStatsConnector{db: db}, nil
}

func (c *DivisionStatsConnector) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *DivisionStatsConnector) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Query fetches division aggregates, optionally bounded by date (ISO
// YYYY-MM-DD, empty means unbounded on that side).
func (c *DivisionStatsConnector) Query(ctx context.Context, dateFrom, dateTo string) ([]DivisionStatsRow, error) {
	query := `
		SELECT division_id, division_name,
		       COUNT(*) FILTER (WHERE is_opportunity)       AS opportunities_count,
		       COUNT(*) FILTER (WHERE NOT is_opportunity)   AS projects_count,
		       COALESCE(SUM(final_total_with_gst) FILTER (WHERE is_opportunity), 0)     AS opportunities_value,
		       COALESCE(SUM(final_total_with_gst) FILTER (WHERE NOT is_opportunity), 0) AS final_total_with_gst,
		       COALESCE(SUM(profit), 0)                     AS profit
		FROM division_projects
		WHERE ($1 = '' OR start_date >= $1::date)
		  AND ($2 = '' OR start_date <= $2::date)
		GROUP BY division_id, division_name
		ORDER BY division_name
	`

	rows, err := c.db.QueryContext(ctx, query, dateFrom, dateTo)
	if err != nil {
		return nil, fmt.Errorf("failed to query division stats: %w", err)
	}
	defer rows.Close()

	var result []DivisionStatsRow
	for rows.Next() {
		var row DivisionStatsRow
		if err := rows.Scan(
			&row.DivisionID, &row.DivisionName,
			&row.OpportunitiesCount, &row.ProjectsCount,
			&row.OpportunitiesValue, &row.FinalTotalWithGST, &row.Profit,
		); err != nil {
			return nil, fmt.Errorf("failed to scan division stats row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}
