package record

// Band is a partition of records by rating range.
type Band int

const (
	Difficult Band = iota
	New
	Easy
	VeryEasy
)

// Bands lists every band from hardest to easiest.
var Bands = []Band{Difficult, New, Easy, VeryEasy}

// EasyCeiling is the highest rating still counted as Easy.
const EasyCeiling = 3

// BandOf maps a rating to its band.
func BandOf(rating int) Band {
	switch {
	case rating < 0:
		return Difficult
	case rating == 0:
		return New
	case rating <= EasyCeiling:
		return Easy
	default:
		return VeryEasy
	}
}

// Contains reports whether rating falls in b.
func (b Band) Contains(rating int) bool {
	return BandOf(rating) == b
}

func (b Band) String() string {
	switch b {
	case Difficult:
		return "difficult"
	case New:
		return "new"
	case Easy:
		return "easy"
	case VeryEasy:
		return "very_easy"
	default:
		return "unknown"
	}
}

// Counts tallies records per band.
type Counts struct {
	Difficult int `json:"difficult"`
	New       int `json:"new"`
	Easy      int `json:"easy"`
	VeryEasy  int `json:"very_easy"`
}

// Total returns the number of records counted.
func (c Counts) Total() int {
	return c.Difficult + c.New + c.Easy + c.VeryEasy
}

// Add counts one record with the given rating.
func (c *Counts) Add(rating int) {
	switch BandOf(rating) {
	case Difficult:
		c.Difficult++
	case New:
		c.New++
	case Easy:
		c.Easy++
	case VeryEasy:
		c.VeryEasy++
	}
}
