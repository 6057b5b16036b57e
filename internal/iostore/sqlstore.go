package iostore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gnames/persload/pkg/schema"
	"github.com/jmoiron/sqlx"
)

// bulkChunk limits rows per INSERT statement, keeping the number of
// parameters under the limits of SQLite and MySQL.
const bulkChunk = 200

// sqlStore keeps persons and offices in SQLite or MySQL through sqlx.
type sqlStore struct {
	db      *sqlx.DB
	dialect schema.Dialect
}

func newSQLStore(db *sqlx.DB, d schema.Dialect) *sqlStore {
	return &sqlStore{db: db, dialect: d}
}

// ensureSchema creates tables and indices that do not exist yet.
func (s *sqlStore) ensureSchema(ctx context.Context) error {
	for _, m := range schema.DDLModels() {
		stmts := append([]string{m.TableDDL(s.dialect)}, m.IndexDDL(s.dialect)...)
		for _, q := range stmts {
			if _, err := s.db.ExecContext(ctx, q); err != nil {
				return fmt.Errorf("table %s: %w", m.TableName(), err)
			}
		}
	}
	return nil
}

func (s *sqlStore) FirstPersonBySurname(
	ctx context.Context,
	surname string,
) (schema.Person, bool, error) {
	var res schema.Person
	q := `SELECT id, name, surname, age, office_id
		FROM persons WHERE surname = ?
		ORDER BY id LIMIT 1`
	err := s.db.GetContext(ctx, &res, q, surname)
	if errors.Is(err, sql.ErrNoRows) {
		return res, false, nil
	}
	if err != nil {
		return res, false, err
	}
	return res, true, nil
}

func (s *sqlStore) OfficeByName(
	ctx context.Context,
	name string,
) (schema.Office, bool, error) {
	var res schema.Office
	q := `SELECT id, name, short_name
		FROM offices WHERE name = ?
		ORDER BY id LIMIT 1`
	err := s.db.GetContext(ctx, &res, q, name)
	if errors.Is(err, sql.ErrNoRows) {
		return res, false, nil
	}
	if err != nil {
		return res, false, err
	}
	return res, true, nil
}

func (s *sqlStore) CreateOffice(ctx context.Context, o *schema.Office) error {
	q := `INSERT INTO offices (name, short_name) VALUES (:name, :short_name)`
	result, err := s.db.NamedExecContext(ctx, q, o)
	if err != nil {
		return err
	}
	o.ID, err = result.LastInsertId()
	return err
}

func (s *sqlStore) CreatePerson(ctx context.Context, p *schema.Person) error {
	q := `INSERT INTO persons (name, surname, age, office_id)
		VALUES (:name, :surname, :age, :office_id)`
	result, err := s.db.NamedExecContext(ctx, q, p)
	if err != nil {
		return err
	}
	p.ID, err = result.LastInsertId()
	return err
}

func (s *sqlStore) UpdatePerson(ctx context.Context, p *schema.Person) error {
	q := `UPDATE persons
		SET name = :name, surname = :surname, age = :age, office_id = :office_id
		WHERE id = :id`
	result, err := s.db.NamedExecContext(ctx, q, p)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("person with id %d does not exist", p.ID)
	}
	return nil
}

// BulkCreatePersons inserts persons with multi-row INSERT statements in one
// transaction.
func (s *sqlStore) BulkCreatePersons(
	ctx context.Context,
	ps []*schema.Person,
) error {
	if len(ps) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for chunk := range slices.Chunk(ps, bulkChunk) {
		q, args := bulkInsert(chunk)
		if _, err = tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("bulk insert: %w", err)
		}
	}

	return tx.Commit()
}

// bulkInsert builds INSERT INTO persons ... VALUES (?, ?, ?, ?), ...
func bulkInsert(ps []*schema.Person) (string, []any) {
	valueStrings := make([]string, len(ps))
	valueArgs := make([]any, 0, len(ps)*len(personColumns))
	for i, p := range ps {
		valueStrings[i] = "(?, ?, ?, ?)"
		valueArgs = append(valueArgs, p.Name, p.Surname, p.Age, p.OfficeID)
	}

	q := fmt.Sprintf("INSERT INTO persons (%s) VALUES %s",
		strings.Join(personColumns, ", "),
		strings.Join(valueStrings, ", "),
	)
	return q, valueArgs
}

func (s *sqlStore) Count(ctx context.Context) (int64, int64, error) {
	var persons, offices int64
	if err := s.db.GetContext(ctx, &persons, "SELECT COUNT(*) FROM persons"); err != nil {
		return 0, 0, err
	}
	if err := s.db.GetContext(ctx, &offices, "SELECT COUNT(*) FROM offices"); err != nil {
		return 0, 0, err
	}
	return persons, offices, nil
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}
