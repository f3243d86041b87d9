package gtfs

import "sort"

// Direction of travel along the corridor. Caltrain platform stop ids carry
// a directional suffix: base id + "1" is the northbound platform, + "2" the
// southbound one.
type Direction int

const (
	Northbound Direction = iota
	Southbound
)

func (d Direction) String() string {
	if d == Southbound {
		return "Southbound"
	}
	return "Northbound"
}

func (d Direction) suffix() string {
	if d == Southbound {
		return "2"
	}
	return "1"
}

// station is one corridor stop: public code, directional stop-id base, and
// its position along the line (0 = northern terminus).
type station struct {
	code  string
	base  string
	order int
}

// Corridor stations north to south. The base ids follow the operator's
// numbering; platform ids are base+"1"/base+"2".
var stations = map[string]station{
	"sf":            {"sf", "7001", 0},
	"22nd":          {"22nd", "7002", 1},
	"bayshore":      {"bayshore", "7003", 2},
	"ssf":           {"ssf", "7004", 3},
	"sanbruno":      {"sanbruno", "7005", 4},
	"millbrae":      {"millbrae", "7006", 5},
	"broadway":      {"broadway", "7007", 6},
	"burlingame":    {"burlingame", "7008", 7},
	"sanmateo":      {"sanmateo", "7009", 8},
	"haywardpark":   {"haywardpark", "7010", 9},
	"hillsdale":     {"hillsdale", "7011", 10},
	"belmont":       {"belmont", "7012", 11},
	"sancarlos":     {"sancarlos", "7013", 12},
	"redwoodcity":   {"redwoodcity", "7014", 13},
	"menlopark":     {"menlopark", "7016", 14},
	"paloalto":      {"paloalto", "7017", 15},
	"californiaave": {"californiaave", "7019", 16},
	"sanantonio":    {"sanantonio", "7020", 17},
	"mountainview":  {"mountainview", "7021", 18},
	"sunnyvale":     {"sunnyvale", "7022", 19},
	"lawrence":      {"lawrence", "7023", 20},
	"santaclara":    {"santaclara", "7024", 21},
	"collegepark":   {"collegepark", "7025", 22},
	"sanjose":       {"sanjose", "7026", 23},
	"tamien":        {"tamien", "7027", 24},
}

// Mapping is a resolved stop id for a station code and direction. Exact is
// false when the code was unknown and the id had to be synthesized, a
// best-effort guess the caller should surface as low confidence.
type Mapping struct {
	StopID string
	Exact  bool
}

// StopIDFor maps a public station code plus direction to the dataset stop
// id. Unknown codes degrade to code+suffix instead of failing; see Mapping.
func StopIDFor(code string, dir Direction) Mapping {
	if st, ok := stations[code]; ok {
		return Mapping{StopID: st.base + dir.suffix(), Exact: true}
	}
	return Mapping{StopID: code + dir.suffix(), Exact: false}
}

// TravelDirection derives direction from corridor ordering: a trip from a
// more northern station to a more southern one runs southbound. Unknown
// codes default to northbound, ok=false.
func TravelDirection(originCode, destinationCode string) (Direction, bool) {
	o, okO := stations[originCode]
	d, okD := stations[destinationCode]
	if !okO || !okD {
		return Northbound, false
	}
	if o.order < d.order {
		return Southbound, true
	}
	return Northbound, true
}

// StationCodes lists the known public codes in corridor order.
func StationCodes() []string {
	codes := make([]string, 0, len(stations))
	for code := range stations {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		return stations[codes[i]].order < stations[codes[j]].order
	})
	return codes
}
