// Package verse serves the daily Quran verse. Selection is
// deterministic per civil day so every request on the same date sees
// the same verse.
package verse

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Noor-Labs-LLC/minbar/internal/model"
)

var verses = []model.Verse{
	{
		Text:             "وَمَن يَتَّقِ اللَّهَ يَجْعَل لَّهُ مَخْرَجًا",
		Translation:      "And whoever fears Allah - He will make for him a way out",
		Reference:        "Quran 65:2",
		SurahNumber:      65,
		SurahName:        "الطلاق",
		SurahEnglishName: "At-Talaq",
		Ayah:             2,
	},
	{
		Text:             "وَبَشِّرِ الصَّابِرِينَ",
		Translation:      "And give good tidings to the patient",
		Reference:        "Quran 2:155",
		SurahNumber:      2,
		SurahName:        "البقرة",
		SurahEnglishName: "Al-Baqarah",
		Ayah:             155,
	},
	{
		Text:             "إِنَّ مَعَ الْعُسْرِ يُسْرًا",
		Translation:      "Indeed, with hardship comes ease",
		Reference:        "Quran 94:6",
		SurahNumber:      94,
		SurahName:        "الشرح",
		SurahEnglishName: "Ash-Sharh",
		Ayah:             6,
	},
	{
		Text:             "رَبَّنَا آتِنَا فِي الدُّنْيَا حَسَنَةً وَفِي الْآخِرَةِ حَسَنَةً وَقِنَا عَذَابَ النَّارِ",
		Translation:      "Our Lord, give us good in this world and good in the next world and save us from the punishment of the Fire",
		Reference:        "Quran 2:201",
		SurahNumber:      2,
		SurahName:        "البقرة",
		SurahEnglishName: "Al-Baqarah",
		Ayah:             201,
	},
	{
		Text:             "وَذَكِّرْ فَإِنَّ الذِّكْرَىٰ تَنفَعُ الْمُؤْمِنِينَ",
		Translation:      "And remind, for indeed, the reminder benefits the believers",
		Reference:        "Quran 51:55",
		SurahNumber:      51,
		SurahName:        "الذاريات",
		SurahEnglishName: "Adh-Dhariyat",
		Ayah:             55,
	},
}

// Daily returns the verse for the given date. The date string is
// hashed with a signed 32-bit string hash (month is zero-based, an
// inherited quirk the selection depends on) and reduced modulo the
// verse count.
func Daily(date time.Time) model.Verse {
	seed := fmt.Sprintf("%d-%d-%d", date.Year(), int(date.Month())-1, date.Day())
	h := int64(hashCode(seed))
	if h < 0 {
		h = -h
	}
	return verses[int(h)%len(verses)]
}

// Random returns any verse from the set.
func Random() model.Verse {
	return verses[rand.Intn(len(verses))]
}

// hashCode mirrors the classic 31x string hash with signed 32-bit
// overflow: h = h*31 + ch.
func hashCode(s string) int32 {
	var h int32
	for _, ch := range s {
		h = (h << 5) - h + ch
	}
	return h
}
