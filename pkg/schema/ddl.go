package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// Dialect selects the SQL flavor of generated DDL.
type Dialect string

const (
	SQLite Dialect = "sqlite"
	MySQL  Dialect = "mysql"
)

type index struct {
	name    string
	table   string
	columns []string
}

func (i index) inline() string {
	return fmt.Sprintf("    KEY %s (%s)", i.name, strings.Join(i.columns, ", "))
}

func (i index) statement() string {
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s(%s);",
		i.name, i.table, strings.Join(i.columns, ", "))
}

func primaryKey(d Dialect) string {
	if d == MySQL {
		return "BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

// generateDDL creates a CREATE TABLE statement from struct tags.
// Extra lines (constraints, inline keys) are appended after the columns.
func generateDDL(
	model any,
	tableName string,
	d Dialect,
	extra ...string,
) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")
		if ddlTag == "PK" {
			ddlTag = primaryKey(d)
		}

		if dbTag != "" && dbTag != "-" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}
	columns = append(columns, extra...)

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)",
		tableName,
		strings.Join(columns, ",\n"))
	if d == MySQL {
		ddl += " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"
	}

	return ddl + ";"
}

func tableDDL(model any, table string, d Dialect, idx []index, extra ...string) string {
	if d == MySQL {
		for _, v := range idx {
			extra = append(extra, v.inline())
		}
	}
	return generateDDL(model, table, d, extra...)
}

func indexDDL(d Dialect, idx []index) []string {
	if d == MySQL {
		return []string{}
	}
	res := make([]string, len(idx))
	for i, v := range idx {
		res[i] = v.statement()
	}
	return res
}

var officeIndices = []index{
	{"idx_offices_name", "offices", []string{"name"}},
}

var personIndices = []index{
	{"idx_persons_surname", "persons", []string{"surname"}},
	{"idx_persons_office_id", "persons", []string{"office_id"}},
}

// Office DDL methods
func (o Office) TableDDL(d Dialect) string {
	return tableDDL(o, o.TableName(), d, officeIndices)
}

func (o Office) IndexDDL(d Dialect) []string {
	return indexDDL(d, officeIndices)
}

func (o Office) TableName() string {
	return "offices"
}

// Person DDL methods
func (p Person) TableDDL(d Dialect) string {
	fk := "    FOREIGN KEY (office_id) REFERENCES offices(id) ON DELETE CASCADE"
	return tableDDL(p, p.TableName(), d, personIndices, fk)
}

func (p Person) IndexDDL(d Dialect) []string {
	return indexDDL(d, personIndices)
}

func (p Person) TableName() string {
	return "persons"
}
