// Package gar describes the GAR distribution format: the fixed table
// catalog, per-table XML files, and the public version-discovery
// service.
package gar

// Table describes one table of the GAR distribution: its storage name,
// the XML files that feed it, and the tables it references.
type Table struct {
	// Name is the storage table name.
	Name string
	// FilePrefix is the distribution file prefix, e.g. "AS_ADDR_OBJ".
	FilePrefix string
	// Element is the XML row element name inside the file.
	Element string
	// Columns are the XML attribute names, in storage column order.
	Columns []string
	// DependsOn lists tables that must be loaded first.
	DependsOn []string
	// PerRegion marks tables distributed in per-region subdirectories
	// rather than at the dump root.
	PerRegion bool
}

var catalog = []Table{
	{
		Name:       "OBJECT_LEVELS",
		FilePrefix: "AS_OBJECT_LEVELS",
		Element:    "OBJECTLEVEL",
		Columns:    []string{"LEVEL", "NAME", "SHORTNAME", "UPDATEDATE", "STARTDATE", "ENDDATE", "ISACTIVE"},
	},
	{
		Name:       "ADDR_OBJ_TYPES",
		FilePrefix: "AS_ADDR_OBJ_TYPES",
		Element:    "ADDRESSOBJECTTYPE",
		Columns:    []string{"ID", "LEVEL", "SHORTNAME", "NAME", "DESC", "UPDATEDATE", "STARTDATE", "ENDDATE", "ISACTIVE"},
	},
	{
		Name:       "HOUSE_TYPES",
		FilePrefix: "AS_HOUSE_TYPES",
		Element:    "HOUSETYPE",
		Columns:    []string{"ID", "NAME", "SHORTNAME", "DESC", "UPDATEDATE", "STARTDATE", "ENDDATE", "ISACTIVE"},
	},
	{
		Name:       "APARTMENT_TYPES",
		FilePrefix: "AS_APARTMENT_TYPES",
		Element:    "APARTMENTTYPE",
		Columns:    []string{"ID", "NAME", "SHORTNAME", "DESC", "UPDATEDATE", "STARTDATE", "ENDDATE", "ISACTIVE"},
	},
	{
		Name:       "REESTR_OBJECTS",
		FilePrefix: "AS_REESTR_OBJECTS",
		Element:    "OBJECT",
		Columns:    []string{"OBJECTID", "CREATEDATE", "CHANGEID", "LEVELID", "UPDATEDATE", "OBJECTGUID", "ISACTIVE"},
		DependsOn:  []string{"OBJECT_LEVELS"},
		PerRegion:  true,
	},
	{
		Name:       "ADDR_OBJ",
		FilePrefix: "AS_ADDR_OBJ",
		Element:    "OBJECT",
		Columns:    []string{"ID", "OBJECTID", "OBJECTGUID", "CHANGEID", "NAME", "TYPENAME", "LEVEL", "OPERTYPEID", "PREVID", "NEXTID", "UPDATEDATE", "STARTDATE", "ENDDATE", "ISACTUAL", "ISACTIVE"},
		DependsOn:  []string{"OBJECT_LEVELS", "ADDR_OBJ_TYPES", "REESTR_OBJECTS"},
		PerRegion:  true,
	},
	{
		Name:       "HOUSES",
		FilePrefix: "AS_HOUSES",
		Element:    "HOUSE",
		Columns:    []string{"ID", "OBJECTID", "OBJECTGUID", "CHANGEID", "HOUSENUM", "HOUSETYPE", "OPERTYPEID", "PREVID", "NEXTID", "UPDATEDATE", "STARTDATE", "ENDDATE", "ISACTUAL", "ISACTIVE"},
		DependsOn:  []string{"HOUSE_TYPES", "REESTR_OBJECTS"},
		PerRegion:  true,
	},
	{
		Name:       "APARTMENTS",
		FilePrefix: "AS_APARTMENTS",
		Element:    "APARTMENT",
		Columns:    []string{"ID", "OBJECTID", "OBJECTGUID", "CHANGEID", "NUMBER", "APARTTYPE", "OPERTYPEID", "PREVID", "NEXTID", "UPDATEDATE", "STARTDATE", "ENDDATE", "ISACTUAL", "ISACTIVE"},
		DependsOn:  []string{"APARTMENT_TYPES", "REESTR_OBJECTS"},
		PerRegion:  true,
	},
	{
		Name:       "MUN_HIERARCHY",
		FilePrefix: "AS_MUN_HIERARCHY",
		Element:    "ITEM",
		Columns:    []string{"ID", "OBJECTID", "PARENTOBJID", "CHANGEID", "OKTMO", "PREVID", "NEXTID", "UPDATEDATE", "STARTDATE", "ENDDATE", "ISACTIVE"},
		DependsOn:  []string{"ADDR_OBJ", "HOUSES", "APARTMENTS"},
		PerRegion:  true,
	},
	{
		Name:       "ADM_HIERARCHY",
		FilePrefix: "AS_ADM_HIERARCHY",
		Element:    "ITEM",
		Columns:    []string{"ID", "OBJECTID", "PARENTOBJID", "CHANGEID", "REGIONCODE", "AREACODE", "CITYCODE", "PLACECODE", "PLANCODE", "STREETCODE", "PREVID", "NEXTID", "UPDATEDATE", "STARTDATE", "ENDDATE", "ISACTIVE"},
		DependsOn:  []string{"ADDR_OBJ", "HOUSES", "APARTMENTS"},
		PerRegion:  true,
	},
}

// Catalog returns the fixed set of GAR tables.
func Catalog() []Table {
	out := make([]Table, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a table descriptor by storage name.
func Lookup(name string) (Table, bool) {
	for _, t := range catalog {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}
