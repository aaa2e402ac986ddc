package packets

// body for logging in
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// PrayerDay is one day of an imported month. Times are unix seconds.
type PrayerDay struct {
	Day     int    `json:"day" binding:"required,min=1,max=31"`
	Hijri   string `json:"hijri" binding:"required"`
	Fajr    int64  `json:"fajr" binding:"required"`
	Syuruk  int64  `json:"syuruk" binding:"required"`
	Dhuhr   int64  `json:"dhuhr" binding:"required"`
	Asr     int64  `json:"asr" binding:"required"`
	Maghrib int64  `json:"maghrib" binding:"required"`
	Isha    int64  `json:"isha" binding:"required"`
}

// body for replacing a zone month
type PutMonthRequest struct {
	Prayers []PrayerDay `json:"prayers" binding:"required,dive"`
}
