package domain

import "math"

// The 27 lunar mansions in ecliptic order.
var nakshatraNames = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni",
	"Uttara Phalguni", "Hasta", "Chitra", "Swati", "Vishakha", "Anuradha",
	"Jyeshtha", "Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana",
	"Dhanishta", "Shatabhisha", "Purva Bhadrapada", "Uttara Bhadrapada",
	"Revati",
}

// Vimshottari lord cycle; repeats three times across the 27 mansions.
var nakshatraLords = [9]string{
	"Ketu", "Venus", "Sun", "Moon", "Mars", "Rahu", "Jupiter", "Saturn",
	"Mercury",
}

var signLords = map[string]string{
	"Aries":       "Mars",
	"Taurus":      "Venus",
	"Gemini":      "Mercury",
	"Cancer":      "Moon",
	"Leo":         "Sun",
	"Virgo":       "Mercury",
	"Libra":       "Venus",
	"Scorpio":     "Mars",
	"Sagittarius": "Jupiter",
	"Capricorn":   "Saturn",
	"Aquarius":    "Saturn",
	"Pisces":      "Jupiter",
}

// NakshatraFromLongitude resolves the mansion, pada and mansion lord occupied
// by a sidereal longitude in degrees. Longitudes outside [0,360) are
// normalized first. Each mansion spans 13°20' (360/27) and each pada 3°20';
// multiplying before dividing keeps mansion boundaries at whole and
// half degrees exact instead of drifting on the repeating-decimal span.
func NakshatraFromLongitude(deg float64) NakshatraInfo {
	deg = normalizeDegrees(deg)
	idx := int(deg * 27 / 360)
	if idx > 26 {
		idx = 26
	}
	pada := int(deg*108/360)%4 + 1
	return NakshatraInfo{
		Name: nakshatraNames[idx],
		Pada: pada,
		Lord: nakshatraLords[idx%9],
	}
}

// KetuLongitude derives Ketu's longitude from Rahu's. The lunar nodes sit
// diametrically opposite each other and only Rahu is tabulated directly.
func KetuLongitude(rahu float64) float64 {
	return normalizeDegrees(rahu + 180)
}

// SignLord returns the ruling body of a zodiac sign. Used for the ascendant,
// whose ruler comes from its sign rather than its mansion.
func SignLord(sign string) (string, bool) {
	lord, ok := signLords[sign]
	return lord, ok
}

func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
