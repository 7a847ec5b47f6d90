package model

// Verse is a Quran verse with its translation and reference.
type Verse struct {
	Text             string `json:"text"`
	Translation      string `json:"translation"`
	Reference        string `json:"reference"`
	SurahNumber      int    `json:"surah_number"`
	SurahName        string `json:"surah_name"`
	SurahEnglishName string `json:"surah_english_name"`
	Ayah             int    `json:"ayah"`
}
