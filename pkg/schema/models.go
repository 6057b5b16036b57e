// Package schema provides database models for persload.
// The same structs drive GORM AutoMigrate on PostgreSQL, the DDL used by the
// SQLite and MySQL stores, and entity validation.
package schema

// DDLGenerator defines how Go models generate DDL for the sqlx based stores.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL(d Dialect) string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no separate statements are needed.
	IndexDDL(d Dialect) []string

	// TableName returns the table name for this model.
	TableName() string
}

// Office is a parent entity that persons belong to.
type Office struct {
	// ID is assigned by storage.
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id" db:"id" ddl:"PK"`

	// Name is the lookup key used by the input files.
	Name string `gorm:"type:varchar(50);not null;index" json:"name" db:"name" validate:"required,max=50" ddl:"VARCHAR(50) NOT NULL"`

	// ShortName defaults to the first 10 characters of Name.
	ShortName string `gorm:"type:varchar(20);not null;default:''" json:"short_name" db:"short_name" validate:"max=20" ddl:"VARCHAR(20) NOT NULL DEFAULT ''"`
}

// Person is the main entity of an input file.
type Person struct {
	// ID is assigned by storage.
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id" db:"id" ddl:"PK"`

	Name string `gorm:"type:varchar(50);not null" json:"name" db:"name" validate:"required,max=50" ddl:"VARCHAR(50) NOT NULL"`

	// Surname is the natural key. It is not unique in storage; when several
	// persons share a surname the one with the smallest ID is matched.
	Surname string `gorm:"type:varchar(50);not null;index" json:"surname" db:"surname" validate:"required,max=50" ddl:"VARCHAR(50) NOT NULL"`

	Age int `gorm:"not null" json:"age" db:"age" validate:"gte=0" ddl:"INT NOT NULL"`

	// OfficeID refers to Office.ID.
	OfficeID int64 `gorm:"not null;index" json:"office" db:"office_id" validate:"required" ddl:"BIGINT NOT NULL"`

	Office *Office `gorm:"constraint:OnDelete:CASCADE" json:"-" db:"-" validate:"-"`
}

// NewOffice creates an office for a name that was not found in storage.
func NewOffice(name string) Office {
	short := []rune(name)
	if len(short) > 10 {
		short = short[:10]
	}
	return Office{Name: name, ShortName: string(short)}
}
