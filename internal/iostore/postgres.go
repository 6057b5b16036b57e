package iostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/gnames/persload/pkg/db"
	"github.com/gnames/persload/pkg/schema"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var personColumns = []string{"name", "surname", "age", "office_id"}

// pgStore keeps persons and offices in PostgreSQL. Bulk inserts use
// CopyFrom inside a transaction.
type pgStore struct {
	operator db.Operator
	pool     *pgxpool.Pool
}

func newPgStore(op db.Operator) *pgStore {
	return &pgStore{operator: op, pool: op.Pool()}
}

func (s *pgStore) FirstPersonBySurname(
	ctx context.Context,
	surname string,
) (schema.Person, bool, error) {
	var res schema.Person
	q := `SELECT id, name, surname, age, office_id
		FROM persons WHERE surname = $1
		ORDER BY id LIMIT 1`
	err := s.pool.QueryRow(ctx, q, surname).Scan(
		&res.ID, &res.Name, &res.Surname, &res.Age, &res.OfficeID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return res, false, nil
	}
	if err != nil {
		return res, false, err
	}
	return res, true, nil
}

func (s *pgStore) OfficeByName(
	ctx context.Context,
	name string,
) (schema.Office, bool, error) {
	var res schema.Office
	q := `SELECT id, name, short_name
		FROM offices WHERE name = $1
		ORDER BY id LIMIT 1`
	err := s.pool.QueryRow(ctx, q, name).Scan(
		&res.ID, &res.Name, &res.ShortName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return res, false, nil
	}
	if err != nil {
		return res, false, err
	}
	return res, true, nil
}

func (s *pgStore) CreateOffice(ctx context.Context, o *schema.Office) error {
	q := `INSERT INTO offices (name, short_name) VALUES ($1, $2) RETURNING id`
	return s.pool.QueryRow(ctx, q, o.Name, o.ShortName).Scan(&o.ID)
}

func (s *pgStore) CreatePerson(ctx context.Context, p *schema.Person) error {
	q := `INSERT INTO persons (name, surname, age, office_id)
		VALUES ($1, $2, $3, $4) RETURNING id`
	return s.pool.QueryRow(ctx, q,
		p.Name, p.Surname, p.Age, p.OfficeID,
	).Scan(&p.ID)
}

func (s *pgStore) UpdatePerson(ctx context.Context, p *schema.Person) error {
	q := `UPDATE persons SET name = $1, surname = $2, age = $3, office_id = $4
		WHERE id = $5`
	tag, err := s.pool.Exec(ctx, q,
		p.Name, p.Surname, p.Age, p.OfficeID, p.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("person with id %d does not exist", p.ID)
	}
	return nil
}

// BulkCreatePersons copies persons in one transaction. CopyFrom does not
// report generated IDs, so IDs of persons stay zero.
func (s *pgStore) BulkCreatePersons(
	ctx context.Context,
	ps []*schema.Person,
) error {
	if len(ps) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Prepare rows for CopyFrom.
	rows := make([][]any, len(ps))
	for i, p := range ps {
		rows[i] = []any{p.Name, p.Surname, p.Age, p.OfficeID}
	}

	copyCount, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"persons"},
		personColumns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy from: %w", err)
	}
	if int(copyCount) != len(ps) {
		return fmt.Errorf("copied %d persons out of %d", copyCount, len(ps))
	}

	return tx.Commit(ctx)
}

func (s *pgStore) Count(ctx context.Context) (int64, int64, error) {
	var persons, offices int64
	q := `SELECT (SELECT COUNT(*) FROM persons), (SELECT COUNT(*) FROM offices)`
	err := s.pool.QueryRow(ctx, q).Scan(&persons, &offices)
	return persons, offices, err
}

func (s *pgStore) Close() error {
	return s.operator.Close()
}
