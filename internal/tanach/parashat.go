package tanach

import "strings"

// Parashah links a weekly Torah portion name to the chapter where the
// portion begins. Chapters are the traditional starting points; a portion
// can start mid-chapter, in which case the chapter holding the first verse
// is used.
type Parashah struct {
	Name    string
	Book    string // canonical English book name
	Chapter int
}

// parashiyot lists all 54 weekly portions in annual-cycle order.
var parashiyot = []Parashah{
	{"Bereshit", "Genesis", 1},
	{"Noach", "Genesis", 6},
	{"Lech-Lecha", "Genesis", 12},
	{"Vayera", "Genesis", 18},
	{"Chayei Sara", "Genesis", 23},
	{"Toldot", "Genesis", 25},
	{"Vayetzei", "Genesis", 28},
	{"Vayishlach", "Genesis", 32},
	{"Vayeshev", "Genesis", 37},
	{"Miketz", "Genesis", 41},
	{"Vayigash", "Genesis", 44},
	{"Vayechi", "Genesis", 47},
	{"Shemot", "Exodus", 1},
	{"Vaera", "Exodus", 6},
	{"Bo", "Exodus", 10},
	{"Beshalach", "Exodus", 13},
	{"Yitro", "Exodus", 18},
	{"Mishpatim", "Exodus", 21},
	{"Terumah", "Exodus", 25},
	{"Tetzaveh", "Exodus", 27},
	{"Ki Tisa", "Exodus", 30},
	{"Vayakhel", "Exodus", 35},
	{"Pekudei", "Exodus", 38},
	{"Vayikra", "Leviticus", 1},
	{"Tzav", "Leviticus", 6},
	{"Shmini", "Leviticus", 9},
	{"Tazria", "Leviticus", 12},
	{"Metzora", "Leviticus", 14},
	{"Achrei Mot", "Leviticus", 16},
	{"Kedoshim", "Leviticus", 19},
	{"Emor", "Leviticus", 21},
	{"Behar", "Leviticus", 25},
	{"Bechukotai", "Leviticus", 26},
	{"Bamidbar", "Numbers", 1},
	{"Nasso", "Numbers", 4},
	{"Beha'alotcha", "Numbers", 8},
	{"Sh'lach", "Numbers", 13},
	{"Korach", "Numbers", 16},
	{"Chukat", "Numbers", 19},
	{"Balak", "Numbers", 22},
	{"Pinchas", "Numbers", 25},
	{"Matot", "Numbers", 30},
	{"Masei", "Numbers", 33},
	{"Devarim", "Deuteronomy", 1},
	{"Vaetchanan", "Deuteronomy", 3},
	{"Eikev", "Deuteronomy", 7},
	{"Re'eh", "Deuteronomy", 11},
	{"Shoftim", "Deuteronomy", 16},
	{"Ki Teitzei", "Deuteronomy", 21},
	{"Ki Tavo", "Deuteronomy", 26},
	{"Nitzavim", "Deuteronomy", 29},
	{"Vayeilech", "Deuteronomy", 31},
	{"Ha'Azinu", "Deuteronomy", 32},
	{"V'Zot HaBerachah", "Deuteronomy", 33},
}

// parashahByLower indexes portions by lowercased name for the
// case-insensitive fallback lookup.
var parashahByLower = func() map[string]*Parashah {
	m := make(map[string]*Parashah, len(parashiyot))
	for i := range parashiyot {
		m[strings.ToLower(parashiyot[i].Name)] = &parashiyot[i]
	}
	return m
}()

// GetParashah looks up a Torah portion by name. A leading "Parashat "
// prefix is stripped, so both "Vayera" and "Parashat Vayera" resolve.
// Lookup is case-insensitive. Returns nil for unknown names.
func GetParashah(name string) *Parashah {
	cleaned := Clean(name)
	if cleaned == "" {
		return nil
	}
	lower := strings.ToLower(cleaned)
	lower = strings.TrimPrefix(lower, "parashat ")
	return parashahByLower[strings.TrimSpace(lower)]
}

// Parashiyot returns all weekly portions in annual-cycle order.
func Parashiyot() []Parashah {
	out := make([]Parashah, len(parashiyot))
	copy(out, parashiyot)
	return out
}
