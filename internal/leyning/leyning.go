// Package leyning maps weekly Torah portions to their Haftarah readings
// following the diaspora (Ashkenazi) custom. The table is static; special
// Shabbatot that override the weekly Haftarah are out of scope here and
// handled by the calendar's event stream instead.
package leyning

import "strings"

// Segment is one contiguous Haftarah span within a single book.
// Begin is always "chapter:verse"; End is either "chapter:verse" for a
// cross-chapter span or a bare verse number within the begin chapter.
type Segment struct {
	Book  string // canonical English book name
	Begin string
	End   string
}

// String renders the segment as "Book begin-end", e.g. "Isaiah 42:5-43:10"
// or "Amos 9:7-15".
func (s Segment) String() string {
	return s.Book + " " + s.Begin + "-" + s.End
}

// haftarot is keyed by parsha name as the calendar renders it (without the
// "Parashat " prefix). Multi-segment entries are portions whose Haftarah
// skips verses.
var haftarot = map[string][]Segment{
	"Bereshit":         {{"Isaiah", "42:5", "43:10"}},
	"Noach":            {{"Isaiah", "54:1", "55:5"}},
	"Lech-Lecha":       {{"Isaiah", "40:27", "41:16"}},
	"Vayera":           {{"II Kings", "4:1", "37"}},
	"Chayei Sara":      {{"I Kings", "1:1", "31"}},
	"Toldot":           {{"Malachi", "1:1", "2:7"}},
	"Vayetzei":         {{"Hosea", "12:13", "14:10"}},
	"Vayishlach":       {{"Obadiah", "1:1", "21"}},
	"Vayeshev":         {{"Amos", "2:6", "3:8"}},
	"Miketz":           {{"I Kings", "3:15", "4:1"}},
	"Vayigash":         {{"Ezekiel", "37:15", "28"}},
	"Vayechi":          {{"I Kings", "2:1", "12"}},
	"Shemot":           {{"Isaiah", "27:6", "28:13"}, {"Isaiah", "29:22", "23"}},
	"Vaera":            {{"Ezekiel", "28:25", "29:21"}},
	"Bo":               {{"Jeremiah", "46:13", "28"}},
	"Beshalach":        {{"Judges", "4:4", "5:31"}},
	"Yitro":            {{"Isaiah", "6:1", "7:6"}, {"Isaiah", "9:5", "6"}},
	"Mishpatim":        {{"Jeremiah", "34:8", "22"}, {"Jeremiah", "33:25", "26"}},
	"Terumah":          {{"I Kings", "5:26", "6:13"}},
	"Tetzaveh":         {{"Ezekiel", "43:10", "27"}},
	"Ki Tisa":          {{"I Kings", "18:1", "39"}},
	"Vayakhel":         {{"I Kings", "7:40", "50"}},
	"Pekudei":          {{"I Kings", "7:51", "8:21"}},
	"Vayikra":          {{"Isaiah", "43:21", "44:23"}},
	"Tzav":             {{"Jeremiah", "7:21", "8:3"}, {"Jeremiah", "9:22", "23"}},
	"Shmini":           {{"II Samuel", "6:1", "7:17"}},
	"Tazria":           {{"II Kings", "4:42", "5:19"}},
	"Metzora":          {{"II Kings", "7:3", "20"}},
	"Achrei Mot":       {{"Ezekiel", "22:1", "19"}},
	"Kedoshim":         {{"Amos", "9:7", "15"}},
	"Emor":             {{"Ezekiel", "44:15", "31"}},
	"Behar":            {{"Jeremiah", "32:6", "27"}},
	"Bechukotai":       {{"Jeremiah", "16:19", "17:14"}},
	"Bamidbar":         {{"Hosea", "2:1", "22"}},
	"Nasso":            {{"Judges", "13:2", "25"}},
	"Beha'alotcha":     {{"Zechariah", "2:14", "4:7"}},
	"Sh'lach":          {{"Joshua", "2:1", "24"}},
	"Korach":           {{"I Samuel", "11:14", "12:22"}},
	"Chukat":           {{"Judges", "11:1", "33"}},
	"Balak":            {{"Micah", "5:6", "6:8"}},
	"Pinchas":          {{"I Kings", "18:46", "19:21"}},
	"Matot":            {{"Jeremiah", "1:1", "2:3"}},
	"Masei":            {{"Jeremiah", "2:4", "28"}, {"Jeremiah", "3:4", "4"}},
	"Devarim":          {{"Isaiah", "1:1", "27"}},
	"Vaetchanan":       {{"Isaiah", "40:1", "26"}},
	"Eikev":            {{"Isaiah", "49:14", "51:3"}},
	"Re'eh":            {{"Isaiah", "54:11", "55:5"}},
	"Shoftim":          {{"Isaiah", "51:12", "52:12"}},
	"Ki Teitzei":       {{"Isaiah", "54:1", "10"}},
	"Ki Tavo":          {{"Isaiah", "60:1", "22"}},
	"Nitzavim":         {{"Isaiah", "61:10", "63:9"}},
	"Vayeilech":        {{"Isaiah", "55:6", "56:8"}},
	"Ha'Azinu":         {{"II Samuel", "22:1", "51"}},
	"V'Zot HaBerachah": {{"Joshua", "1:1", "18"}},
}

// combinedOverrides handles doubled portions whose custom does not simply
// read the second half's Haftarah.
var combinedOverrides = map[string]string{
	"Nitzavim-Vayeilech": "Nitzavim",
}

// Haftarah returns the Haftarah segments for a parsha name, or nil when
// the portion is unknown. Doubled portions ("Vayakhel-Pekudei") resolve to
// the second half's Haftarah unless an explicit override applies.
func Haftarah(parsha string) []Segment {
	name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(parsha), "Parashat "))
	if name == "" {
		return nil
	}
	if segs, ok := haftarot[name]; ok {
		return segs
	}
	if override, ok := combinedOverrides[name]; ok {
		return haftarot[override]
	}
	if i := strings.IndexByte(name, '-'); i >= 0 {
		if segs, ok := haftarot[name[i+1:]]; ok {
			return segs
		}
		return haftarot[name[:i]]
	}
	return nil
}

// Citation renders the Haftarah for a parsha as a single citation string,
// joining multiple segments with ", ". Returns "" for unknown portions.
func Citation(parsha string) string {
	segs := Haftarah(parsha)
	if len(segs) == 0 {
		return ""
	}
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}
