package registry

import "fmt"

// Division selects which parallel administrative hierarchy a query
// traverses. The same object can appear under both hierarchies with
// different parent chains, so every hierarchy-aware operation takes a
// Division.
type Division int

const (
	// DivisionMun is the municipal hierarchy.
	DivisionMun Division = iota + 1
	// DivisionAdm is the administrative-territorial hierarchy.
	DivisionAdm
)

// String returns the short schema name of the division.
func (d Division) String() string {
	switch d {
	case DivisionMun:
		return "mun"
	case DivisionAdm:
		return "adm"
	default:
		return fmt.Sprintf("division(%d)", int(d))
	}
}

// Code returns the numeric division code used by the statement service.
func (d Division) Code() int {
	return int(d)
}

// ParseDivision converts a short division name into a Division.
func ParseDivision(s string) (Division, error) {
	switch s {
	case "mun":
		return DivisionMun, nil
	case "adm":
		return DivisionAdm, nil
	default:
		return 0, fmt.Errorf("unknown division %q (want mun or adm)", s)
	}
}

// procSet holds the backing-store entry points for one division.
type procSet struct {
	hierarchy    string
	selectObject string
	searchText   string
	searchGUID   string
}

// divisionProcs maps each division to its stored procedures. Procedure
// names are never built dynamically; unknown divisions fail the lookup.
var divisionProcs = map[Division]procSet{
	DivisionMun: {
		hierarchy:    "mun.UP_GetHierarchy",
		selectObject: "mun.UP_RegistrySelect",
		searchText:   "mun.UP_SearchRegistry",
		searchGUID:   "mun.UP_SearchRegistryByGUID",
	},
	DivisionAdm: {
		hierarchy:    "adm.UP_GetHierarchy",
		selectObject: "adm.UP_RegistrySelect",
		searchText:   "adm.UP_SearchRegistry",
		searchGUID:   "adm.UP_SearchRegistryByGUID",
	},
}

func (d Division) procs() (procSet, error) {
	ps, ok := divisionProcs[d]
	if !ok {
		return procSet{}, fmt.Errorf("no procedures registered for %s", d)
	}
	return ps, nil
}
