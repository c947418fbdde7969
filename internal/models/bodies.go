// ABOUTME: Catalog of the celestial bodies and points a chart covers
// ABOUTME: Order follows the ephemeris engine's body numbering and must not change

package models

// Body identifies one entry of the catalog.
type Body struct {
	Index int
	Code  string
	Name  string
}

// Bodies is every body computed for a chart, indexed by engine body number.
var Bodies = [...]Body{
	{0, "sun", "Sun"},
	{1, "moon", "Moon"},
	{2, "mercury", "Mercury"},
	{3, "venus", "Venus"},
	{4, "mars", "Mars"},
	{5, "jupiter", "Jupiter"},
	{6, "saturn", "Saturn"},
	{7, "uranus", "Uranus"},
	{8, "neptune", "Neptune"},
	{9, "pluto", "Pluto"},
	{10, "mean_node", "Mean Node"},
	{11, "true_node", "True Node"},
	{12, "mean_apog", "Mean Apogee"},
	{13, "oscu_apog", "Osculating Apogee"},
	{14, "earth", "Earth"},
	{15, "chiron", "Chiron"},
	{16, "pholus", "Pholus"},
	{17, "ceres", "Ceres"},
	{18, "pallas", "Pallas"},
	{19, "juno", "Juno"},
	{20, "vesta", "Vesta"},
	{21, "intp_apog", "Interpolated Apogee"},
	{22, "intp_perg", "Interpolated Perigee"},
}

// BodyCount is the number of catalog entries.
const BodyCount = len(Bodies)

// BodyByCode looks up a catalog entry by its code.
func BodyByCode(code string) (Body, bool) {
	for _, b := range Bodies {
		if b.Code == code {
			return b, true
		}
	}
	return Body{}, false
}
