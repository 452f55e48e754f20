// Package dataset provides the hierarchical tabular data model the equiv
// comparison steps operate on: a DataSet of named DataTables, each with typed
// columns and rows. Tables are addressed by name, honoring the dataset's
// case sensitivity, never by position.
package dataset

import (
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// SerializationFormat selects the wire format a dataset advertises for
// remoting.
type SerializationFormat int

const (
	SerializationXML SerializationFormat = iota
	SerializationBinary
)

// SchemaSerializationMode controls whether schema travels with data.
type SchemaSerializationMode int

const (
	IncludeSchema SchemaSerializationMode = iota
	ExcludeSchema
)

// Locale wraps language.Tag so it round-trips through both JSON (via the
// promoted TextMarshaler) and YAML.
type Locale struct {
	language.Tag
}

// MakeLocale parses a BCP 47 tag, yielding the root locale for bad input.
func MakeLocale(s string) Locale { return Locale{language.Make(s)} }

func (l Locale) MarshalYAML() (any, error) { return l.Tag.String(), nil }

func (l *Locale) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	tag, err := language.Parse(s)
	if err != nil {
		return err
	}
	l.Tag = tag
	return nil
}

// DataSet is a named collection of tables plus dataset-wide metadata.
type DataSet struct {
	DataSetName             string                  `equiv:"name=DataSetName" json:"dataSetName" yaml:"dataSetName"`
	CaseSensitive           bool                    `equiv:"name=CaseSensitive" json:"caseSensitive" yaml:"caseSensitive"`
	EnforceConstraints      bool                    `equiv:"name=EnforceConstraints" json:"enforceConstraints" yaml:"enforceConstraints"`
	HasErrors               bool                    `equiv:"name=HasErrors" json:"hasErrors" yaml:"hasErrors"`
	Locale                  Locale                  `equiv:"name=Locale" json:"locale" yaml:"locale"`
	Namespace               string                  `equiv:"name=Namespace" json:"namespace" yaml:"namespace"`
	Prefix                  string                  `equiv:"name=Prefix" json:"prefix" yaml:"prefix"`
	RemotingFormat          SerializationFormat     `equiv:"name=RemotingFormat" json:"remotingFormat" yaml:"remotingFormat"`
	SchemaSerializationMode SchemaSerializationMode `equiv:"name=SchemaSerializationMode" json:"schemaSerializationMode" yaml:"schemaSerializationMode"`
	ExtendedProperties      map[string]any          `equiv:"name=ExtendedProperties" json:"extendedProperties,omitempty" yaml:"extendedProperties,omitempty"`
	Relations               []Relation              `equiv:"name=Relations" json:"relations,omitempty" yaml:"relations,omitempty"`
	Tables                  []*DataTable            `equiv:"name=Tables" json:"tables,omitempty" yaml:"tables,omitempty"`
}

// Table looks a table up by name, honoring CaseSensitive. Returns nil when
// the dataset holds no such table.
func (ds *DataSet) Table(name string) *DataTable {
	for _, t := range ds.Tables {
		if t.TableName == name {
			return t
		}
	}
	if !ds.CaseSensitive {
		for _, t := range ds.Tables {
			if strings.EqualFold(t.TableName, name) {
				return t
			}
		}
	}
	return nil
}

// TableNames returns the table names in declaration order.
func (ds *DataSet) TableNames() []string {
	names := make([]string, len(ds.Tables))
	for i, t := range ds.Tables {
		names[i] = t.TableName
	}
	return names
}

// DataTable is one named table: metadata, a typed column set and rows.
type DataTable struct {
	TableName          string         `equiv:"name=TableName" json:"tableName" yaml:"tableName"`
	DisplayExpression  string         `equiv:"name=DisplayExpression" json:"displayExpression,omitempty" yaml:"displayExpression,omitempty"`
	CaseSensitive      bool           `equiv:"name=CaseSensitive" json:"caseSensitive" yaml:"caseSensitive"`
	Locale             Locale         `equiv:"name=Locale" json:"locale" yaml:"locale"`
	Namespace          string         `equiv:"name=Namespace" json:"namespace" yaml:"namespace"`
	Prefix             string         `equiv:"name=Prefix" json:"prefix" yaml:"prefix"`
	ExtendedProperties map[string]any `equiv:"name=ExtendedProperties" json:"extendedProperties,omitempty" yaml:"extendedProperties,omitempty"`
	Columns            []*DataColumn  `equiv:"name=Columns" json:"columns,omitempty" yaml:"columns,omitempty"`
	Rows               []Row          `equiv:"name=Rows" json:"rows,omitempty" yaml:"rows,omitempty"`
}

// Column looks a column up by name, honoring CaseSensitive.
func (t *DataTable) Column(name string) *DataColumn {
	for _, c := range t.Columns {
		if c.ColumnName == name {
			return c
		}
	}
	if !t.CaseSensitive {
		for _, c := range t.Columns {
			if strings.EqualFold(c.ColumnName, name) {
				return c
			}
		}
	}
	return nil
}

// ColumnNames returns the column names in declaration order.
func (t *DataTable) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.ColumnName
	}
	return names
}

// DataColumn describes one typed column.
type DataColumn struct {
	ColumnName    string `equiv:"name=ColumnName" json:"columnName" yaml:"columnName"`
	DataType      string `equiv:"name=DataType" json:"dataType" yaml:"dataType"`
	AllowNull     bool   `equiv:"name=AllowNull" json:"allowNull" yaml:"allowNull"`
	AutoIncrement bool   `equiv:"name=AutoIncrement" json:"autoIncrement" yaml:"autoIncrement"`
	Caption       string `equiv:"name=Caption" json:"caption,omitempty" yaml:"caption,omitempty"`
	DefaultValue  any    `equiv:"name=DefaultValue" json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	MaxLength     int    `equiv:"name=MaxLength" json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	ReadOnly      bool   `equiv:"name=ReadOnly" json:"readOnly" yaml:"readOnly"`
	Unique        bool   `equiv:"name=Unique" json:"unique" yaml:"unique"`
}

// Row holds cell values keyed by column name.
type Row map[string]any

// Relation links a parent and a child table over column lists.
type Relation struct {
	RelationName  string   `equiv:"name=RelationName" json:"relationName" yaml:"relationName"`
	ParentTable   string   `equiv:"name=ParentTable" json:"parentTable" yaml:"parentTable"`
	ChildTable    string   `equiv:"name=ChildTable" json:"childTable" yaml:"childTable"`
	ParentColumns []string `equiv:"name=ParentColumns" json:"parentColumns" yaml:"parentColumns"`
	ChildColumns  []string `equiv:"name=ChildColumns" json:"childColumns" yaml:"childColumns"`
	Nested        bool     `equiv:"name=Nested" json:"nested" yaml:"nested"`
}
