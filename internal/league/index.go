package league

// Index resolves ids to records. It is rebuilt from scratch for every load
// and never mutated afterwards, so concurrent readers need no locking.
type Index struct {
	Players     map[string]Player
	Schools     map[string]School
	SchoolCount map[string]int
}

// BuildIndex maps every player and school by id and counts players per
// known school. Players pointing at a school that is not in schools are
// not counted and do not create an entry.
func BuildIndex(players []Player, schools []School) *Index {
	idx := &Index{
		Players:     make(map[string]Player, len(players)),
		Schools:     make(map[string]School, len(schools)),
		SchoolCount: make(map[string]int, len(schools)),
	}
	for _, s := range schools {
		idx.Schools[s.ID] = s
		idx.SchoolCount[s.ID] = 0
	}
	for _, p := range players {
		idx.Players[p.ID] = p
		if _, ok := idx.SchoolCount[p.School]; ok && p.School != "" {
			idx.SchoolCount[p.School]++
		}
	}
	return idx
}

// PlayerRef is a resolved player reference. When the id is unknown, Name
// falls back to the raw id and Known is false.
type PlayerRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Elo   int    `json:"elo"`
	Known bool   `json:"known"`
}

// Player resolves a player id.
func (idx *Index) Player(id string) PlayerRef {
	if p, ok := idx.Players[id]; ok {
		return PlayerRef{ID: p.ID, Name: p.Name, Elo: p.Elo, Known: true}
	}
	return PlayerRef{ID: id, Name: id}
}

// LogoPath is where the logo for a school is served from.
func LogoPath(schoolID string) string {
	return "/images/" + schoolID + ".avif"
}

// SchoolName returns the display name for a school id, or the id itself.
func (idx *Index) SchoolName(id string) string {
	if s, ok := idx.Schools[id]; ok && s.Name != "" {
		return s.Name
	}
	return id
}
